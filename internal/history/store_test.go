package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/trackcut/trackcut/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleResult(id, path string, finished time.Time) *model.JobResult {
	return &model.JobResult{
		ID:         id,
		File:       &model.MediaFile{Path: path},
		Removed:    model.NewIndexSet(2, 4),
		Status:     model.JobStatusSucceeded,
		Detail:     "",
		StartedAt:  finished.Add(-time.Minute),
		FinishedAt: finished,
	}
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range []string{"a.mkv", "b.mkv", "c.mkv"} {
		result := sampleResult(
			"job-"+name,
			filepath.Join("/videos", name),
			base.Add(time.Duration(i)*time.Minute),
		)
		if err := store.Append(ctx, result); err != nil {
			t.Fatalf("Append(%s) error: %v", name, err)
		}
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() returned %d entries, expected 3", len(entries))
	}
	if entries[0].FileName != "c.mkv" {
		t.Errorf("entries[0].FileName = %q, expected newest first", entries[0].FileName)
	}
	if entries[0].Removed != "2,4" {
		t.Errorf("entries[0].Removed = %q", entries[0].Removed)
	}
	if entries[0].Status != model.JobStatusSucceeded {
		t.Errorf("entries[0].Status = %q", entries[0].Status)
	}
}

func TestRecentHonorsLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		result := sampleResult(
			"job-"+string(rune('a'+i)),
			"/videos/x.mkv",
			base.Add(time.Duration(i)*time.Second),
		)
		if err := store.Append(ctx, result); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) returned %d entries", len(entries))
	}
}

func TestAppendIsIdempotentPerID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	result := sampleResult("job-same", "/videos/a.mkv", time.Now().UTC())
	if err := store.Append(ctx, result); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	result.Status = model.JobStatusFailed
	result.Detail = "second write"
	if err := store.Append(ctx, result); err != nil {
		t.Fatalf("Append() error on rewrite: %v", err)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent() returned %d entries, expected 1", len(entries))
	}
	if entries[0].Status != model.JobStatusFailed || entries[0].Detail != "second write" {
		t.Errorf("Entry not replaced: %+v", entries[0])
	}
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	old := sampleResult("job-old", "/videos/old.mkv", time.Now().Add(-48*time.Hour).UTC())
	fresh := sampleResult("job-new", "/videos/new.mkv", time.Now().UTC())
	for _, r := range []*model.JobResult{old, fresh} {
		if err := store.Append(ctx, r); err != nil {
			t.Fatalf("Append() error: %v", err)
		}
	}

	removed, err := store.Prune(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune() error: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d entries, expected 1", removed)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent() error: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "job-new" {
		t.Errorf("Remaining entries = %+v", entries)
	}
}
