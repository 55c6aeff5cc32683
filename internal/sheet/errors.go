package sheet

import (
	"errors"
	"net/url"
)

// Failure kinds of a sheet load.
var (
	ErrStatus  = errors.New("unexpected response status")
	ErrWrapper = errors.New("malformed payload wrapper")
	ErrJSON    = errors.New("invalid payload JSON")
	ErrShape   = errors.New("unexpected table structure")
)

// Kind classifies a load error for logs and the fetch journal.
func Kind(err error) string {
	var urlErr *url.Error
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrWrapper):
		return "wrapper"
	case errors.Is(err, ErrJSON):
		return "json"
	case errors.Is(err, ErrShape):
		return "shape"
	case errors.As(err, &urlErr):
		return "network"
	default:
		return "unknown"
	}
}
