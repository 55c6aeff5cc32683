package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetview/internal/model"
)

func TestFetchJournal(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer database.Close()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ok := model.FetchRecord{
		ID:        "first",
		URL:       "https://example.test/sheet",
		StartedAt: base,
		Duration:  250 * time.Millisecond,
		Status:    model.FetchOK,
		Columns:   4,
		Rows:      120,
	}
	failed := model.FetchRecord{
		ID:        "second",
		URL:       "https://example.test/sheet",
		StartedAt: base.Add(time.Minute),
		Duration:  30 * time.Second,
		Status:    model.FetchFailed,
		ErrorKind: "network",
		Error:     "network error: timeout",
	}

	require.NoError(t, RecordFetch(database, ok))
	require.NoError(t, RecordFetch(database, failed))

	all, err := ListFetches(database, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, failed, all[0])
	assert.Equal(t, ok, all[1])

	latest, err := ListFetches(database, 1)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "second", latest[0].ID)
}

func TestRecordFetchRejectsDuplicateID(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	defer database.Close()

	rec := model.FetchRecord{ID: "dup", URL: "u", StartedAt: time.Now(), Status: model.FetchOK}
	require.NoError(t, RecordFetch(database, rec))
	assert.Error(t, RecordFetch(database, rec))
}
