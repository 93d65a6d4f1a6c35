// Package backend selects and builds the ledger store from configuration.
package backend

import (
	"fmt"
	"log/slog"

	"finboard/internal/store"
	"finboard/internal/store/memory"
	"finboard/internal/store/sqlite"
)

// Type identifies a ledger store backend.
type Type string

const (
	Memory Type = "memory"
	SQLite Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case Memory, SQLite:
		return true
	default:
		return false
	}
}

// Config holds what backend construction needs.
type Config struct {
	Type      Type
	SQLiteDSN string
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result carries the built store and its cleanup.
type Result struct {
	Store   store.LedgerStore
	Cleanup CleanupFunc
}

// Create builds the configured ledger store.
func Create(cfg Config, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		repo, err := sqlite.NewRepository(cfg.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite ledger store", "dsn", cfg.SQLiteDSN)
		return &Result{Store: repo, Cleanup: repo.Close}, nil
	default:
		s := memory.New()
		logger.Info("Initialized memory ledger store")
		return &Result{Store: s, Cleanup: s.Close}, nil
	}
}
