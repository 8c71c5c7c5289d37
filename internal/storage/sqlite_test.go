package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"), testLogger())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	want := sampleSnapshot()
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSnapshotsEqual(t, got, want)
}

func TestSQLiteEmptyDatabase(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 0 || len(snap.Budgets) != 0 {
		t.Fatalf("expected empty ledger, got %+v", snap)
	}
}

func TestSQLiteSaveReplacesPreviousState(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	if err := repo.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	smaller := sampleSnapshot()
	smaller.Transactions = smaller.Transactions[:1]
	smaller.Budgets = map[string]float64{"Food": 80}
	if err := repo.Save(ctx, smaller); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	assertSnapshotsEqual(t, got, smaller)
}
