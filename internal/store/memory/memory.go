// Package memory implements the ledger store in process memory.
package memory

import (
	"context"
	"sync"

	"finboard/internal/core"
)

type Store struct {
	mu      sync.Mutex
	ledgers map[string][]core.Transaction
}

func New() *Store {
	return &Store{ledgers: make(map[string][]core.Transaction)}
}

// Seed replaces the session's ledger with a copy of records.
func (s *Store) Seed(_ context.Context, sessionID string, records []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[sessionID] = append([]core.Transaction(nil), records...)
	return nil
}

// Append adds one record and returns the new ledger length. An unseeded
// session starts from an empty ledger.
func (s *Store) Append(_ context.Context, sessionID string, t core.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledgers[sessionID] = append(s.ledgers[sessionID], t)
	return int64(len(s.ledgers[sessionID])), nil
}

// List returns a copy of the session's records in insertion order.
func (s *Store) List(_ context.Context, sessionID string) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.ledgers[sessionID]...), nil
}

// Drop discards the session's ledger.
func (s *Store) Drop(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, sessionID)
	return nil
}

func (s *Store) Close() error {
	return nil
}
