package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// SQLiteRepository persists the ledger in a SQLite database. It keeps
// the same wholesale-overwrite contract as the JSON backend: Save
// replaces both tables inside one transaction.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string, logger *log.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: logger.WithComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements Repository. Rows come back in insert order (rowid),
// which reproduces the ledger's insertion order.
func (r *SQLiteRepository) Load(ctx context.Context) (Snapshot, error) {
	snap := EmptySnapshot()

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount, type, category, source, description, date FROM transactions ORDER BY rowid`)
	if err != nil {
		return snap, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t       core.Transaction
			rawDate string
		)
		if err := rows.Scan(&t.ID, &t.Amount, &t.Type, &t.Category, &t.Source, &t.Description, &rawDate); err != nil {
			return snap, fmt.Errorf("scan transaction: %w", err)
		}
		ts, err := core.ParseTimestamp(rawDate)
		if err != nil {
			return snap, fmt.Errorf("parse stored date: %w", err)
		}
		t.Date = ts
		snap.Transactions = append(snap.Transactions, t)
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterate transactions: %w", err)
	}

	budgetRows, err := r.db.QueryContext(ctx, `SELECT category, amount FROM budgets`)
	if err != nil {
		return snap, fmt.Errorf("query budgets: %w", err)
	}
	defer budgetRows.Close()

	for budgetRows.Next() {
		var (
			category string
			amount   float64
		)
		if err := budgetRows.Scan(&category, &amount); err != nil {
			return snap, fmt.Errorf("scan budget: %w", err)
		}
		snap.Budgets[category] = amount
	}
	if err := budgetRows.Err(); err != nil {
		return snap, fmt.Errorf("iterate budgets: %w", err)
	}

	r.logger.DebugContext(ctx, "Ledger loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(snap.Transactions))
	return snap, nil
}

// Save implements Repository.
func (r *SQLiteRepository) Save(ctx context.Context, snap Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM budgets`); err != nil {
		return fmt.Errorf("clear budgets: %w", err)
	}

	for _, t := range snap.Transactions {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, amount, type, category, source, description, date)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Amount, string(t.Type), t.Category, t.Source, t.Description, t.Date.StoreString())
		if err != nil {
			return fmt.Errorf("insert transaction %d: %w", t.ID, err)
		}
	}

	for category, amount := range snap.Budgets {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (category, amount) VALUES (?, ?)`, category, amount); err != nil {
			return fmt.Errorf("insert budget %s: %w", category, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	r.logger.DebugContext(ctx, "Ledger saved",
		log.FieldOperation, log.OpSave,
		log.FieldCount, len(snap.Transactions))
	return nil
}
