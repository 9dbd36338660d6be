// Package store provides session.Store implementations.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/warp/datecalc/session"
)

// Defaults for NewMemory when the caller passes zero values.
const (
	DefaultCapacity = 10000
	DefaultTTL      = 24 * time.Hour
)

// =============================================================================
// MEMORY STORE - Expiring in-memory implementation
// =============================================================================

// Memory keeps session snapshots in an LRU. Sessions idle longer than the TTL
// or pushed out by capacity are gone; callers see session.ErrNotFound.
type Memory struct {
	// mu serialises check-then-add writes; the LRU guards its own reads.
	mu       sync.Mutex
	sessions *expirable.LRU[string, session.Session]
}

// NewMemory creates a store holding at most capacity sessions for ttl since
// their last write.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		sessions: expirable.NewLRU[string, session.Session](capacity, nil, ttl),
	}
}

func (m *Memory) Create(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions.Peek(s.ID); ok {
		return session.ErrAlreadyExists
	}
	m.sessions.Add(s.ID, *s)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*session.Session, error) {
	s, ok := m.sessions.Get(id)
	if !ok {
		return nil, &session.NotFoundError{ID: id}
	}
	return &s, nil
}

// Save overwrites the snapshot and restarts the session's TTL.
func (m *Memory) Save(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions.Peek(s.ID); !ok {
		return &session.NotFoundError{ID: s.ID}
	}
	m.sessions.Add(s.ID, *s)
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.sessions.Remove(id) {
		return &session.NotFoundError{ID: id}
	}
	return nil
}

// Len reports the number of live sessions.
func (m *Memory) Len() int {
	return m.sessions.Len()
}
