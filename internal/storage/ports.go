// Package storage contains the persistence adapters for the ledger:
// a JSON document store (the default) and a SQLite store. Both persist
// the full ledger state on every save; there is no incremental write.
package storage

import (
	"context"

	"fintrack/internal/core"
)

// Snapshot is the complete durable state of one ledger: the ordered
// transaction list and the budget map.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      map[string]float64
}

// Repository is the port the ledger store writes through. Load is
// called once at startup; Save replaces the stored state wholesale
// after every mutation.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
}

// EmptySnapshot returns a snapshot with no transactions and an empty
// budget map, the fallback state when nothing can be loaded.
func EmptySnapshot() Snapshot {
	return Snapshot{Budgets: make(map[string]float64)}
}
