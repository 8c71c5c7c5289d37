package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func sampleSnapshot() Snapshot {
	return Snapshot{
		Transactions: []core.Transaction{
			{ID: 1, Amount: 2000, Type: core.Income, Category: "Salary", Source: "Acme", Description: "May salary", Date: core.NewTimestamp(2025, 5, 1, 9, 0)},
			{ID: 2, Amount: 150, Type: core.Expense, Category: "Food", Description: "groceries", Date: core.NewTimestamp(2025, 5, 2, 18, 30)},
			{ID: 3, Amount: -20, Type: core.Expense, Category: "Food", Description: "refund", Date: core.NewTimestamp(2025, 5, 3, 10, 0)},
		},
		Budgets: map[string]float64{"Food": 100, "Bills": 250.50},
	}
}

func assertSnapshotsEqual(t *testing.T, got, want Snapshot) {
	t.Helper()
	if len(got.Transactions) != len(want.Transactions) {
		t.Fatalf("expected %d transactions, got %d", len(want.Transactions), len(got.Transactions))
	}
	for i, w := range want.Transactions {
		g := got.Transactions[i]
		if g.ID != w.ID || g.Amount != w.Amount || g.Type != w.Type ||
			g.Category != w.Category || g.Source != w.Source || g.Description != w.Description {
			t.Fatalf("transaction %d mismatch: got %+v, want %+v", i, g, w)
		}
		if !g.Date.Equal(w.Date.Time) {
			t.Fatalf("transaction %d date mismatch: got %v, want %v", i, g.Date, w.Date)
		}
	}
	if len(got.Budgets) != len(want.Budgets) {
		t.Fatalf("expected %d budgets, got %d", len(want.Budgets), len(got.Budgets))
	}
	for k, v := range want.Budgets {
		if got.Budgets[k] != v {
			t.Fatalf("budget %s mismatch: got %v, want %v", k, got.Budgets[k], v)
		}
	}
}

func newTestJSONRepo(t *testing.T) (*JSONRepository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := NewJSONRepository(
		filepath.Join(dir, "finance_data.json"),
		filepath.Join(dir, "budgets.json"),
		testLogger(),
	)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	return repo, dir
}

func TestJSONRoundTrip(t *testing.T) {
	repo, _ := newTestJSONRepo(t)
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

func TestJSONMissingFilesMeanEmptyLedger(t *testing.T) {
	repo, _ := newTestJSONRepo(t)

	snap, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Transactions) != 0 {
		t.Fatalf("expected no transactions, got %d", len(snap.Transactions))
	}
	if snap.Budgets == nil || len(snap.Budgets) != 0 {
		t.Fatalf("expected empty budget map, got %v", snap.Budgets)
	}
}

func TestJSONCorruptFileDegradesToEmpty(t *testing.T) {
	repo, dir := newTestJSONRepo(t)
	ctx := context.Background()

	txPath := filepath.Join(dir, "finance_data.json")
	if err := os.WriteFile(txPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	snap, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load should not fail on corrupt data: %v", err)
	}
	if len(snap.Transactions) != 0 {
		t.Fatalf("expected empty ledger, got %d transactions", len(snap.Transactions))
	}

	// The unreadable original is preserved before any overwrite.
	backup, err := os.ReadFile(txPath + ".corrupt")
	if err != nil {
		t.Fatalf("expected corrupt backup file: %v", err)
	}
	if string(backup) != "{not json\n" && string(backup) != "{not json" {
		t.Fatalf("backup content mismatch: %q", backup)
	}

	// The next save overwrites the original with session data only.
	if err := repo.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Transactions) != 3 {
		t.Fatalf("expected 3 transactions after overwrite, got %d", len(reloaded.Transactions))
	}
}

func TestJSONDocumentsAreIndented(t *testing.T) {
	repo, dir := newTestJSONRepo(t)

	if err := repo.Save(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "finance_data.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "\n  {") {
		t.Fatalf("expected human-readable indentation, got:\n%s", data)
	}
	if !strings.Contains(string(data), `"type": "income"`) {
		t.Fatalf("expected spec field names, got:\n%s", data)
	}
}
