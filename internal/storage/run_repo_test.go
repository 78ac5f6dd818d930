package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testDB(t *testing.T) *RunRepo {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return NewRunRepo(db)
}

func TestRunRepo_RecordAndList(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	runs := []IndexRun{
		{StartedAt: now.Add(-2 * time.Minute), FinishedAt: now.Add(-1 * time.Minute), Notes: 10, Chunks: 42, Status: "ok"},
		{StartedAt: now.Add(-1 * time.Minute), FinishedAt: now, Notes: 0, Chunks: 0, Status: "error", Error: "embedding service down"},
	}
	for _, run := range runs {
		if err := repo.Record(ctx, run); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	listed, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("ListRecent() returned %d runs, want 2", len(listed))
	}

	// Newest first.
	if listed[0].Status != "error" || listed[0].Error != "embedding service down" {
		t.Errorf("newest run = %+v", listed[0])
	}
	if listed[1].Notes != 10 || listed[1].Chunks != 42 {
		t.Errorf("oldest run = %+v", listed[1])
	}
}

func TestRunRepo_ListRecent_Limit(t *testing.T) {
	repo := testDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		run := IndexRun{StartedAt: time.Now(), FinishedAt: time.Now(), Notes: i, Chunks: i, Status: "ok"}
		if err := repo.Record(ctx, run); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	listed, err := repo.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(listed) != 3 {
		t.Errorf("ListRecent(3) returned %d runs", len(listed))
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer func() { _ = db.Close() }()

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i, err)
		}
	}
}
