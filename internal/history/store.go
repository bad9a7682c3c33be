// Package history persists finished batch jobs in a local SQLite database
// so earlier runs can be reviewed from the UI and the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/trackcut/trackcut/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS job_history (
    id          TEXT PRIMARY KEY,
    file_path   TEXT NOT NULL,
    file_name   TEXT NOT NULL,
    removed     TEXT NOT NULL,
    status      TEXT NOT NULL,
    detail      TEXT NOT NULL DEFAULT '',
    started_at  TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_job_history_finished ON job_history(finished_at DESC);
`

// Entry is one recorded batch job.
type Entry struct {
	ID         string
	FilePath   string
	FileName   string
	Removed    string
	Status     model.JobStatus
	Detail     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Store records batch job results in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at dbPath,
// creating parent directories as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Append records a finished job.
func (s *Store) Append(ctx context.Context, result *model.JobResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO job_history
		 (id, file_path, file_name, removed, status, detail, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		result.ID,
		result.File.Path,
		result.File.Name(),
		formatIndices(result.Removed),
		string(result.Status),
		result.Detail,
		result.StartedAt.UTC(),
		result.FinishedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// Recent returns the most recently finished entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, file_path, file_name, removed, status, detail, started_at, finished_at
		 FROM job_history ORDER BY finished_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var status string
		if err := rows.Scan(&e.ID, &e.FilePath, &e.FileName, &e.Removed,
			&status, &e.Detail, &e.StartedAt, &e.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		e.Status = model.JobStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries finished before the cutoff and returns the number
// removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM job_history WHERE finished_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune history: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// formatIndices renders a removed-stream set as "2,4" for storage.
func formatIndices(set model.IndexSet) string {
	indices := set.Sorted()
	out := ""
	for i, idx := range indices {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%d", idx)
	}
	return out
}
