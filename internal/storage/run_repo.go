package storage

import (
	"context"
	"database/sql"
	"time"
)

// IndexRun is one completed (or failed) indexing run.
type IndexRun struct {
	ID         int
	StartedAt  time.Time
	FinishedAt time.Time
	Notes      int
	Chunks     int
	Status     string // "ok" or "error"
	Error      string
}

// RunStore records and lists indexing runs.
type RunStore interface {
	Record(ctx context.Context, run IndexRun) error
	ListRecent(ctx context.Context, limit int) ([]IndexRun, error)
}

// RunRepo provides SQLite-backed run ledger operations.
type RunRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new RunRepo.
func NewRunRepo(db *sql.DB) *RunRepo {
	return &RunRepo{db: db}
}

// Record inserts a completed run into the ledger.
func (r *RunRepo) Record(ctx context.Context, run IndexRun) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO index_runs (started_at, finished_at, notes, chunks, status, error)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt, run.FinishedAt, run.Notes, run.Chunks, run.Status, run.Error,
	)
	return err
}

// ListRecent returns the most recent runs, newest first.
func (r *RunRepo) ListRecent(ctx context.Context, limit int) ([]IndexRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, notes, chunks, status, error
		 FROM index_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var runs []IndexRun
	for rows.Next() {
		var run IndexRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.FinishedAt,
			&run.Notes, &run.Chunks, &run.Status, &run.Error); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
