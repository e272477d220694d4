// Package history persists link check reports in SQLite.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/linkcheck"
)

// Run is one recorded link check run.
type Run struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Checked    int
	Skipped    int
	Broken     int
	Report     *linkcheck.Report
}

// Store records check runs in a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
			return nil, errors.WrapError(err, errors.CategoryStorage, "cannot create history directory").
				WithContext("path", dbPath).Build()
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "could not open history database").
			WithContext("path", dbPath).Build()
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to initialize history schema").
			WithContext("path", dbPath).Build()
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS check_runs (
		id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		checked INTEGER NOT NULL,
		skipped INTEGER NOT NULL,
		broken INTEGER NOT NULL,
		payload BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_check_runs_started_at ON check_runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores r. Recording the same run ID twice fails.
func (s *Store) Record(ctx context.Context, r *linkcheck.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO check_runs (id, started_at, finished_at, checked, skipped, broken, payload) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.RunID, r.StartedAt.UnixNano(), r.FinishedAt.UnixNano(), r.Checked, r.Skipped, len(r.Broken), payload,
	)
	if err != nil {
		return errors.WrapError(err, errors.CategoryStorage, "failed to record check run").
			WithContext("run_id", r.RunID).Build()
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit returns all runs.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, started_at, finished_at, checked, skipped, broken, payload FROM check_runs ORDER BY started_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryStorage, "failed to query check runs").Build()
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished int64
			payload           []byte
		)
		if err := rows.Scan(&run.RunID, &started, &finished, &run.Checked, &run.Skipped, &run.Broken, &payload); err != nil {
			return nil, fmt.Errorf("scan check run: %w", err)
		}
		run.StartedAt = time.Unix(0, started).UTC()
		run.FinishedAt = time.Unix(0, finished).UTC()
		var report linkcheck.Report
		if err := json.Unmarshal(payload, &report); err != nil {
			return nil, fmt.Errorf("unmarshal check run %s: %w", run.RunID, err)
		}
		run.Report = &report
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return runs, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
