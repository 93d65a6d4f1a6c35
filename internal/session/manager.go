// Package session tracks browser sessions. Each session owns exactly one
// ledger; handlers receive the session as an explicit object, never through
// ambient state.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"finboard/internal/store"
)

// Session identifies one browser session and the input source its ledger
// was last seeded from.
type Session struct {
	ID        string
	Source    string
	CreatedAt time.Time
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager creates, resolves and TTL-evicts sessions. Evicted sessions get
// their ledgers dropped from the store.
type Manager struct {
	mu           sync.Mutex
	sessions     map[string]*entry
	store        store.LedgerDropper
	ttl          time.Duration
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

func NewManager(st store.LedgerDropper, ttl time.Duration) *Manager {
	m := &Manager{
		sessions:    make(map[string]*entry),
		store:       st,
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}
	go m.startCleanup()
	return m
}

// Create registers a new session pointing at the given source.
func (m *Manager) Create(source string) *Session {
	s := &Session{
		ID:        uuid.NewString(),
		Source:    source,
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = &entry{session: s, lastSeen: s.CreatedAt}
	m.mu.Unlock()
	return s
}

// Lookup resolves a session by ID, refreshing its idle timer.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.session, true
}

// SetSource records the input source of the session's current ledger.
func (m *Manager) SetSource(id, source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[id]; ok {
		e.session.Source = source
	}
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// startCleanup evicts idle sessions periodically.
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictStale()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) evictStale() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	var stale []string
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, id)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, id := range stale {
		if err := m.store.Drop(context.Background(), id); err != nil {
			slog.Error("Failed to drop evicted session ledger", "error", err, "session_id", id)
		}
	}
	if len(stale) > 0 {
		slog.Info("Evicted idle sessions", "count", len(stale))
	}
}

// Stop shuts down the cleanup goroutine once.
func (m *Manager) Stop() {
	m.shutdownOnce.Do(func() {
		close(m.stopCleanup)
	})
}
