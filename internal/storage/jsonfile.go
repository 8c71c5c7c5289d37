package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// JSONRepository persists the ledger as two human-readable documents:
// an ordered transaction array and a category->amount budget object.
//
// A missing file means an empty ledger. An unparseable file degrades to
// an empty ledger with a warning; the unreadable original is copied to
// a .corrupt sibling before the next save overwrites it, so corruption
// never silently destroys data.
type JSONRepository struct {
	transactionsPath string
	budgetsPath      string
	logger           *log.Logger
}

func NewJSONRepository(transactionsPath, budgetsPath string, logger *log.Logger) (*JSONRepository, error) {
	if err := os.MkdirAll(filepath.Dir(transactionsPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(budgetsPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &JSONRepository{
		transactionsPath: transactionsPath,
		budgetsPath:      budgetsPath,
		logger:           logger.WithComponent(log.ComponentStorage),
	}, nil
}

// Load implements Repository. Decode failures are not fatal: the
// affected document is backed up and replaced by empty state.
func (r *JSONRepository) Load(ctx context.Context) (Snapshot, error) {
	snap := EmptySnapshot()

	if data, ok := r.readFile(r.transactionsPath); ok {
		var txs []core.Transaction
		if err := json.Unmarshal(data, &txs); err != nil {
			r.quarantine(r.transactionsPath, err)
		} else {
			snap.Transactions = txs
		}
	}

	if data, ok := r.readFile(r.budgetsPath); ok {
		var budgets map[string]float64
		if err := json.Unmarshal(data, &budgets); err != nil {
			r.quarantine(r.budgetsPath, err)
		} else if budgets != nil {
			snap.Budgets = budgets
		}
	}

	r.logger.DebugContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(snap.Transactions))
	return snap, nil
}

// Save implements Repository. Both documents are serialized with
// 2-space indentation and written concurrently; a failure on either
// file fails the whole flush.
func (r *JSONRepository) Save(ctx context.Context, snap Snapshot) error {
	txData, err := json.MarshalIndent(snap.Transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	budgets := snap.Budgets
	if budgets == nil {
		budgets = make(map[string]float64)
	}
	budgetData, err := json.MarshalIndent(budgets, "", "  ")
	if err != nil {
		return fmt.Errorf("encode budgets: %w", err)
	}

	var g errgroup.Group
	g.Go(func() error { return writeFile(r.transactionsPath, txData) })
	g.Go(func() error { return writeFile(r.budgetsPath, budgetData) })
	if err := g.Wait(); err != nil {
		return err
	}

	r.logger.DebugContext(ctx, "Ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldCount, len(snap.Transactions))
	return nil
}

func (r *JSONRepository) readFile(path string) ([]byte, bool) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false
	}
	if err != nil {
		r.logger.Warn("Could not read store file, starting fresh",
			log.FieldPath, path, log.FieldError, err)
		return nil, false
	}
	return data, true
}

// quarantine preserves an unparseable store file next to the original.
// The next save will overwrite the original with in-session data only.
func (r *JSONRepository) quarantine(path string, cause error) {
	backup := path + ".corrupt"
	if data, err := os.ReadFile(path); err == nil {
		if err := writeFile(backup, data); err != nil {
			r.logger.Warn("Could not back up corrupt store file",
				log.FieldPath, backup, log.FieldError, err)
		}
	}
	r.logger.Warn("Could not parse store file, starting fresh",
		log.FieldPath, path, log.FieldError, cause, "backup", backup)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
