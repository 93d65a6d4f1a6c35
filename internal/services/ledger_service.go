// Package services orchestrates ledger operations across the store and the
// optional event publisher.
package services

import (
	"context"
	"fmt"

	"finboard/internal/core"
	"finboard/internal/events"
	"finboard/internal/log"
	"finboard/internal/store"
)

// LedgerService is the write/read surface handlers talk to. The publisher
// may be nil, which disables events entirely.
type LedgerService struct {
	store     store.LedgerStore
	publisher *events.Publisher
}

func NewLedgerService(st store.LedgerStore, publisher *events.Publisher) *LedgerService {
	return &LedgerService{store: st, publisher: publisher}
}

// Seed replaces the session's ledger with records from a new input source.
func (s *LedgerService) Seed(ctx context.Context, sessionID string, records []core.Transaction) error {
	if err := s.store.Seed(ctx, sessionID, records); err != nil {
		return fmt.Errorf("seed ledger: %w", err)
	}
	return nil
}

// Append stores the record first, then publishes the event best-effort.
// A publish failure is logged and never fails the append.
func (s *LedgerService) Append(ctx context.Context, sessionID string, t core.Transaction) (int64, error) {
	seq, err := s.store.Append(ctx, sessionID, t)
	if err != nil {
		return 0, fmt.Errorf("append transaction: %w", err)
	}

	if s.publisher != nil {
		msg := events.NewTransactionAppended(sessionID, seq, core.DisplayCategory(t.Category), t.Amount.Cents)
		if err := s.publisher.PublishTransactionAppended(ctx, msg); err != nil {
			log.FromContext(ctx).ErrorContext(ctx, "Failed to publish transaction event",
				"error", err, log.FieldSessionID, sessionID, log.FieldSeq, seq)
		}
	}

	return seq, nil
}

// List returns the session's ledger in insertion order.
func (s *LedgerService) List(ctx context.Context, sessionID string) ([]core.Transaction, error) {
	records, err := s.store.List(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return records, nil
}

// Close releases the publisher; the store is owned by the backend result.
func (s *LedgerService) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
