// Package store defines the ledger store ports. A ledger is the append-only
// record sequence owned by one session; stores never mutate or delete
// individual records.
package store

import (
	"context"
	"errors"

	"finboard/internal/core"
)

var ErrUnknownSession = errors.New("unknown session")

type (
	// LedgerSeeder replaces a session's ledger with records from a newly
	// chosen input source.
	LedgerSeeder interface {
		Seed(ctx context.Context, sessionID string, records []core.Transaction) error
	}

	// LedgerAppender appends one record and returns the new ledger length.
	LedgerAppender interface {
		Append(ctx context.Context, sessionID string, t core.Transaction) (int64, error)
	}

	// LedgerReader returns a session's records in insertion order.
	LedgerReader interface {
		List(ctx context.Context, sessionID string) ([]core.Transaction, error)
	}

	// LedgerDropper discards a session's ledger entirely (session eviction).
	LedgerDropper interface {
		Drop(ctx context.Context, sessionID string) error
	}
)

// LedgerStore is the full port implemented by every backend.
type LedgerStore interface {
	LedgerSeeder
	LedgerAppender
	LedgerReader
	LedgerDropper
	Close() error
}
