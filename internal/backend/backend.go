// Package backend selects and constructs the persistence adapter the
// ledger runs on.
package backend

import (
	"context"
	"fmt"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

const (
	JSONBackend   Type = "json"
	SQLiteBackend Type = "sqlite"
)

type (
	// Type identifies a persistence backend.
	Type string

	// CleanupFunc releases backend resources at shutdown.
	CleanupFunc func() error

	// Result holds the constructed repository and its optional cleanup.
	Result struct {
		Repo    storage.Repository
		Cleanup CleanupFunc
	}
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case JSONBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// New constructs the repository selected by the configuration.
func New(ctx context.Context, cfg *config.Config, logger *log.Logger) (*Result, error) {
	blog := logger.WithComponent(log.ComponentBackend)
	t := Type(cfg.DataBackend)

	switch t {
	case JSONBackend:
		repo, err := storage.NewJSONRepository(cfg.TransactionsFile(), cfg.BudgetsFile(), logger)
		if err != nil {
			return nil, fmt.Errorf("initialize json backend: %w", err)
		}
		blog.InfoContext(ctx, "Initialized JSON backend",
			log.FieldBackend, t.String(),
			log.FieldPath, cfg.DataDir)
		return &Result{Repo: repo}, nil

	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath, logger)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		blog.InfoContext(ctx, "Initialized SQLite backend",
			log.FieldBackend, t.String(),
			log.FieldPath, cfg.SQLiteDBPath)
		return &Result{Repo: repo, Cleanup: repo.Close}, nil

	default:
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}
}
