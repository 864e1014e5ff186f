package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/joshuamegnauth54/cosmic-screenshot/internal/config"
	"github.com/joshuamegnauth54/cosmic-screenshot/internal/history"
)

func openTestStore(t *testing.T) *history.Store {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()

	store, err := history.Open(&cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndList(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, history.Entry{
		Path:        "/home/user/Pictures/Screenshot_2024-03-07_09-05-42.png",
		Outcome:     history.OutcomeSaved,
		Interactive: false,
		Modal:       true,
	})
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}
	if first.CreatedAt.IsZero() {
		t.Fatal("expected generated timestamp")
	}

	if _, err := store.Record(ctx, history.Entry{
		CreatedAt: first.CreatedAt.Add(time.Second),
		Outcome:   history.OutcomeCancelled,
	}); err != nil {
		t.Fatal(err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Outcome != history.OutcomeCancelled {
		t.Fatalf("expected newest first, got %q", entries[0].Outcome)
	}
	if entries[1].Path != first.Path {
		t.Fatalf("unexpected path: %q", entries[1].Path)
	}
	if !entries[1].Modal || entries[1].Interactive {
		t.Fatalf("flags lost in round trip: %+v", entries[1])
	}
}

func TestListLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, history.Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Outcome:   history.OutcomeSaved,
		}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := store.List(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].CreatedAt.After(entries[1].CreatedAt) {
		t.Fatal("expected newest-first ordering")
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, time.March, 7, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		outcome := history.OutcomeSaved
		if i == 0 {
			outcome = history.OutcomeFailed
		}
		if _, err := store.Record(ctx, history.Entry{
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Outcome:   outcome,
		}); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.Prune(ctx, 3); err != nil {
		t.Fatalf("Prune returned error: %v", err)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after prune, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Outcome == history.OutcomeFailed {
			t.Fatal("prune removed the wrong rows: oldest entry survived")
		}
	}
}

func TestClear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := store.Record(ctx, history.Entry{Outcome: history.OutcomeSaved}); err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if deleted != 3 {
		t.Fatalf("expected 3 deleted, got %d", deleted)
	}

	entries, err := store.List(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = t.TempDir()

	store, err := history.Open(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(context.Background(), history.Entry{Outcome: history.OutcomeSaved}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := history.Open(&cfg)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	entries, err := reopened.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected persisted entry, got %d", len(entries))
	}
}
