// Package source loads the sheet once per view activation, logging the
// outcome and appending it to the fetch journal.
package source

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sheetview/internal/db"
	"sheetview/internal/model"
	"sheetview/internal/sheet"
)

// Loader loads a dataset.
type Loader interface {
	Load(ctx context.Context) (model.Dataset, error)
	URL() string
}

// Source wraps a Loader with diagnostics.
type Source struct {
	loader  Loader
	journal *sql.DB
	logger  *zap.Logger
	now     func() time.Time
}

// New creates a Source. A nil journal disables journaling and a nil logger
// disables logging.
func New(loader Loader, journal *sql.DB, logger *zap.Logger) *Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Source{
		loader:  loader,
		journal: journal,
		logger:  logger,
		now:     time.Now,
	}
}

// URL returns the URL of the underlying loader.
func (s *Source) URL() string {
	return s.loader.URL()
}

// NewFetchID returns an identifier for one activation.
func NewFetchID() string {
	return uuid.NewString()
}

// Load runs one fetch. An empty fetchID is replaced by a fresh one.
func (s *Source) Load(ctx context.Context, fetchID string) (model.Dataset, error) {
	if fetchID == "" {
		fetchID = NewFetchID()
	}
	logger := s.logger.With(zap.String("fetch_id", fetchID), zap.String("url", s.loader.URL()))

	started := s.now()
	ds, err := s.loader.Load(ctx)
	rec := model.FetchRecord{
		ID:        fetchID,
		URL:       s.loader.URL(),
		StartedAt: started,
		Duration:  s.now().Sub(started),
	}

	if err != nil {
		rec.Status = model.FetchFailed
		rec.ErrorKind = sheet.Kind(err)
		rec.Error = err.Error()
		logger.Error("Sheet fetch failed",
			zap.String("kind", rec.ErrorKind),
			zap.Duration("duration", rec.Duration),
			zap.Error(err))
	} else {
		rec.Status = model.FetchOK
		rec.Columns = len(ds.Columns)
		rec.Rows = len(ds.Rows)
		logger.Info("Sheet loaded",
			zap.Int("columns", rec.Columns),
			zap.Int("rows", rec.Rows),
			zap.Duration("duration", rec.Duration))
	}

	if s.journal != nil {
		if jerr := db.RecordFetch(s.journal, rec); jerr != nil {
			logger.Warn("Failed to journal fetch", zap.Error(jerr))
		}
	}

	return ds, err
}
