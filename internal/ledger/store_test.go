package ledger

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// fakeRepo records snapshots in memory and can simulate save failures.
type fakeRepo struct {
	snap      storage.Snapshot
	saves     int
	failSaves bool
}

var errDiskFull = errors.New("disk full")

func (f *fakeRepo) Load(ctx context.Context) (storage.Snapshot, error) {
	if f.snap.Budgets == nil {
		f.snap.Budgets = make(map[string]float64)
	}
	return f.snap, nil
}

func (f *fakeRepo) Save(ctx context.Context, snap storage.Snapshot) error {
	if f.failSaves {
		return errDiskFull
	}
	f.saves++
	f.snap = storage.Snapshot{
		Transactions: append([]core.Transaction(nil), snap.Transactions...),
		Budgets:      snap.Budgets,
	}
	return nil
}

func newTestStore(t *testing.T, repo *fakeRepo) *Store {
	t.Helper()
	s := NewStore(repo, log.New(log.DefaultConfig()))
	s.now = func() core.Timestamp { return core.NewTimestamp(2025, 5, 15, 12, 0) }
	if err := s.Open(context.Background()); err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	ctx := context.Background()

	first, err := s.AddIncome(ctx, 2000, "Salary", "Acme", "")
	if err != nil {
		t.Fatalf("add income: %v", err)
	}
	second, err := s.AddExpense(ctx, 150, "Food", "groceries")
	if err != nil {
		t.Fatalf("add expense: %v", err)
	}
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1, 2; got %d, %d", first.ID, second.ID)
	}
	if repo.saves != 2 {
		t.Fatalf("expected a flush per mutation, got %d", repo.saves)
	}
}

func TestIDsNeverReusedAfterDelete(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})
	ctx := context.Background()

	var lastID int64
	for i := 0; i < 3; i++ {
		tx, err := s.AddExpense(ctx, 10, "Food", "")
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if tx.ID <= lastID {
			t.Fatalf("id %d not strictly greater than %d", tx.ID, lastID)
		}
		lastID = tx.ID
	}

	// Delete the newest transaction; its id must not come back.
	if ok, err := s.Delete(ctx, lastID); !ok || err != nil {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	tx, err := s.AddExpense(ctx, 20, "Food", "")
	if err != nil {
		t.Fatalf("add after delete: %v", err)
	}
	if tx.ID <= lastID {
		t.Fatalf("id %d reused after deleting %d", tx.ID, lastID)
	}
}

func TestIDsSeededFromExistingData(t *testing.T) {
	repo := &fakeRepo{snap: storage.Snapshot{
		Transactions: []core.Transaction{
			{ID: 7, Amount: 10, Type: core.Expense, Category: "Food", Date: core.NewTimestamp(2025, 4, 1, 9, 0)},
		},
	}}
	s := newTestStore(t, repo)

	tx, err := s.AddExpense(context.Background(), 5, "Food", "")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if tx.ID != 8 {
		t.Fatalf("expected id 8 (max existing + 1), got %d", tx.ID)
	}
}

func TestDeleteUnknownIDIsNoOp(t *testing.T) {
	repo := &fakeRepo{}
	s := newTestStore(t, repo)
	ctx := context.Background()

	if _, err := s.AddExpense(ctx, 10, "Food", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	savesBefore := repo.saves

	ok, err := s.Delete(ctx, 999)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok {
		t.Fatal("expected not-found for unknown id")
	}
	if repo.saves != savesBefore {
		t.Fatal("no-op delete must not flush")
	}
	if len(s.Transactions()) != 1 {
		t.Fatal("no-op delete must not mutate state")
	}

	// Idempotent for an already-deleted id.
	tx, _ := s.AddExpense(ctx, 20, "Food", "")
	if ok, _ := s.Delete(ctx, tx.ID); !ok {
		t.Fatal("expected first delete to succeed")
	}
	if ok, _ := s.Delete(ctx, tx.ID); ok {
		t.Fatal("expected second delete to report not-found")
	}
}

func TestFlushFailureKeepsMutationInMemory(t *testing.T) {
	repo := &fakeRepo{failSaves: true}
	s := newTestStore(t, repo)
	ctx := context.Background()

	tx, err := s.AddExpense(ctx, 50, "Food", "")
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("expected save error, got %v", err)
	}
	if tx.ID == 0 {
		t.Fatal("transaction should still be returned")
	}
	if len(s.Transactions()) != 1 {
		t.Fatal("mutation must stay in memory after a failed flush")
	}

	// The next successful mutation flushes the earlier one too.
	repo.failSaves = false
	if _, err := s.AddExpense(ctx, 25, "Bills", ""); err != nil {
		t.Fatalf("add after recovery: %v", err)
	}
	if len(repo.snap.Transactions) != 2 {
		t.Fatalf("expected both transactions persisted, got %d", len(repo.snap.Transactions))
	}
}

func TestBudgetLifecycle(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})
	ctx := context.Background()

	if err := s.SetBudget(ctx, "Food", 100); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if err := s.SetBudget(ctx, "Food", 120); err != nil {
		t.Fatalf("overwrite budget: %v", err)
	}
	if amount, ok := s.Budget("Food"); !ok || amount != 120 {
		t.Fatalf("expected overwritten budget 120, got %v (%v)", amount, ok)
	}

	if err := s.SetBudget(ctx, "Food", 0); !errors.Is(err, core.ErrInvalidBudget) {
		t.Fatalf("expected ErrInvalidBudget for zero, got %v", err)
	}
	if err := s.SetBudget(ctx, " ", 50); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}

	if ok, err := s.DeleteBudget(ctx, "Food"); !ok || err != nil {
		t.Fatalf("delete budget: ok=%v err=%v", ok, err)
	}
	if ok, _ := s.DeleteBudget(ctx, "Food"); ok {
		t.Fatal("expected not-found for already-deleted budget")
	}
}

func TestBudgetReportUsesCurrentMonthSpend(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})
	ctx := context.Background()

	if err := s.SetBudget(ctx, "Food", 100); err != nil {
		t.Fatalf("set budget: %v", err)
	}
	if _, err := s.AddExpense(ctx, 90, "Food", ""); err != nil {
		t.Fatalf("add: %v", err)
	}

	r := s.BudgetReport("Food")
	if r.Spent != 90 || r.Percentage != 90 || r.Tier != core.TierWarning {
		t.Fatalf("expected 90 spent, 90%%, WARNING; got %+v", r)
	}

	// A refund in the same month reduces spend below the warning line.
	if _, err := s.AddExpense(ctx, -20, "Food", "refund"); err != nil {
		t.Fatalf("add refund: %v", err)
	}
	r = s.BudgetReport("Food")
	if r.Spent != 70 || r.Tier != core.TierGood {
		t.Fatalf("expected 70 spent GOOD, got %+v", r)
	}
}

func TestTransactionsReturnsCopy(t *testing.T) {
	s := newTestStore(t, &fakeRepo{})
	if _, err := s.AddExpense(context.Background(), 10, "Food", ""); err != nil {
		t.Fatalf("add: %v", err)
	}
	view := s.Transactions()
	view[0].Amount = 9999
	if s.Transactions()[0].Amount != 10 {
		t.Fatal("Transactions leaked internal state")
	}
}
