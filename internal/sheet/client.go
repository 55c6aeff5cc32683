package sheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"sheetview/internal/model"
)

// DefaultURL is the public sheet shown when no other source is configured.
const DefaultURL = "https://docs.google.com/spreadsheets/d/1vwc803C8MwWBMc7ntCre3zJ5xZtG881HKkxlIrwwxNs/gviz/tq?tqx=out:json"

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 30 * time.Second

// Client fetches a published Google Sheet through the gviz endpoint.
type Client struct {
	url        string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the request timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the sheet at sheetURL.
func NewClient(sheetURL string, opts ...Option) *Client {
	c := &Client{
		url:        sheetURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the sheet URL.
func (c *Client) URL() string {
	return c.url
}

// Fetch issues one GET to the sheet URL and returns the raw payload.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/javascript, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}
	return string(body), nil
}

// Load fetches and decodes the sheet.
func (c *Client) Load(ctx context.Context) (model.Dataset, error) {
	payload, err := c.Fetch(ctx)
	if err != nil {
		return model.Dataset{}, err
	}
	return Decode(payload)
}
