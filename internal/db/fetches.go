package db

import (
	"database/sql"
	"fmt"
	"time"

	"sheetview/internal/model"
)

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// RecordFetch appends one fetch attempt to the journal.
func RecordFetch(db *sql.DB, rec model.FetchRecord) error {
	query := `
		INSERT INTO fetches (id, url, started_at, duration_ms, status, error_kind, error, column_count, row_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		rec.ID,
		rec.URL,
		rec.StartedAt.UTC().Format(timeLayout),
		rec.Duration.Milliseconds(),
		string(rec.Status),
		nullIfEmpty(rec.ErrorKind),
		nullIfEmpty(rec.Error),
		rec.Columns,
		rec.Rows,
	)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// ListFetches returns the most recent fetch attempts, newest first.
// A limit of zero or less returns every entry.
func ListFetches(db *sql.DB, limit int) ([]model.FetchRecord, error) {
	query := `
		SELECT id, url, started_at, duration_ms, status,
		       COALESCE(error_kind, ''), COALESCE(error, ''), column_count, row_count
		FROM fetches
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list fetches: %w", err)
	}
	defer rows.Close()

	var results []model.FetchRecord
	for rows.Next() {
		var r model.FetchRecord
		var startedAt, status string
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.URL, &startedAt, &durationMS, &status, &r.ErrorKind, &r.Error, &r.Columns, &r.Rows); err != nil {
			return nil, fmt.Errorf("failed to scan fetch row: %w", err)
		}
		r.StartedAt, err = time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at %q: %w", startedAt, err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Status = model.FetchStatus(status)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fetch rows: %w", err)
	}

	return results, nil
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
