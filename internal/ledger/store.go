// Package ledger owns the in-memory ledger state: the transaction list
// and the budget map. Every mutation flushes the full state through the
// persistence port; on a flush failure the mutation stays in memory and
// the error is surfaced, so the session keeps a consistent view and the
// next successful flush catches the file up.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

// Store is the single owner of ledger state for a session. It is not
// safe for concurrent use; the interactive shell is single-threaded.
type Store struct {
	repo   storage.Repository
	logger *log.Logger

	transactions []core.Transaction
	budgets      map[string]float64
	lastID       int64

	now func() core.Timestamp
}

func NewStore(repo storage.Repository, logger *log.Logger) *Store {
	return &Store{
		repo:    repo,
		logger:  logger.WithComponent(log.ComponentLedger),
		budgets: make(map[string]float64),
		now:     core.Now,
	}
}

// Open loads the persisted ledger once at session start. The adapters
// already degrade decode failures to empty state, so an error here is
// an I/O-level problem.
func (s *Store) Open(ctx context.Context) error {
	snap, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	s.transactions = snap.Transactions
	s.budgets = snap.Budgets
	if s.budgets == nil {
		s.budgets = make(map[string]float64)
	}
	for _, t := range s.transactions {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	s.logger.InfoContext(ctx, "Ledger opened",
		log.FieldCount, len(s.transactions),
		"budgets", len(s.budgets))
	return nil
}

// AddIncome records an income transaction. The amount must already be
// validated (nonzero); a negative amount is a clawback/correction.
func (s *Store) AddIncome(ctx context.Context, amount float64, category, source, description string) (core.Transaction, error) {
	return s.add(ctx, core.Transaction{
		Amount:      amount,
		Type:        core.Income,
		Category:    category,
		Source:      source,
		Description: description,
	})
}

// AddExpense records an expense transaction. A negative amount is a
// refund/adjustment that reduces spend.
func (s *Store) AddExpense(ctx context.Context, amount float64, category, description string) (core.Transaction, error) {
	return s.add(ctx, core.Transaction{
		Amount:      amount,
		Type:        core.Expense,
		Category:    category,
		Description: description,
	})
}

func (s *Store) add(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = s.nextID()
	t.Date = s.now()
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	s.transactions = append(s.transactions, t)
	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpAdd,
		log.FieldTransactionID, t.ID,
		log.FieldType, t.Type.String(),
		log.FieldAmount, t.Amount,
		log.FieldCategory, t.Category)
	if err := s.flush(ctx); err != nil {
		// The record stays in memory; the caller warns the user and the
		// next flush retries implicitly.
		return t, err
	}
	return t, nil
}

// Delete removes the transaction with the given id. It reports whether
// a removal occurred and is a no-op for unknown ids.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	for i, t := range s.transactions {
		if t.ID == id {
			s.transactions = append(s.transactions[:i], s.transactions[i+1:]...)
			s.logger.InfoContext(ctx, "Transaction deleted",
				log.FieldOperation, log.OpDelete,
				log.FieldTransactionID, id)
			return true, s.flush(ctx)
		}
	}
	return false, nil
}

// Find returns the transaction with the given id, if present.
func (s *Store) Find(id int64) (core.Transaction, bool) {
	for _, t := range s.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// SetBudget sets or overwrites the monthly budget for a category. The
// caller validates that the amount is strictly positive and the
// category nonempty.
func (s *Store) SetBudget(ctx context.Context, category string, amount float64) error {
	if strings.TrimSpace(category) == "" {
		return core.ErrEmptyCategory
	}
	if err := core.ValidateBudgetAmount(amount); err != nil {
		return err
	}
	s.budgets[category] = amount
	return s.flush(ctx)
}

// DeleteBudget removes the budget for a category, reporting whether a
// removal occurred.
func (s *Store) DeleteBudget(ctx context.Context, category string) (bool, error) {
	if _, ok := s.budgets[category]; !ok {
		return false, nil
	}
	delete(s.budgets, category)
	return true, s.flush(ctx)
}

// Transactions returns a copy of the transaction list in insertion
// order. Views re-derive their own display order.
func (s *Store) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), s.transactions...)
}

// Budgets returns a copy of the budget map.
func (s *Store) Budgets() map[string]float64 {
	out := make(map[string]float64, len(s.budgets))
	for k, v := range s.budgets {
		out[k] = v
	}
	return out
}

// Budget returns the budget for a category, if one is set.
func (s *Store) Budget(category string) (float64, bool) {
	amount, ok := s.budgets[category]
	return amount, ok
}

// BudgetReport evaluates the canonical tiering policy for one category
// against current-month spending.
func (s *Store) BudgetReport(category string) core.BudgetReport {
	now := s.now()
	budget := s.budgets[category]
	spent := core.MonthlyExpensesByCategory(s.transactions, category, now.Year(), now.Month())
	return core.BudgetStatus(budget, spent)
}

// Empty reports whether the ledger holds no transactions.
func (s *Store) Empty() bool {
	return len(s.transactions) == 0
}

// nextID assigns monotonically. lastID is a session high-water mark
// seeded from max(existing ids) at load, so deleting the newest
// transaction never frees its id for reuse.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *Store) flush(ctx context.Context) error {
	snap := storage.Snapshot{
		Transactions: s.transactions,
		Budgets:      s.budgets,
	}
	if err := s.repo.Save(ctx, snap); err != nil {
		s.logger.ErrorContext(ctx, "Ledger flush failed", log.FieldError, err)
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}
