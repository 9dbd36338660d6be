package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/keypad"
)

// DefaultMaxKeys bounds the keys accepted by one Press call.
const DefaultMaxKeys = 256

// Manager applies keys to stored sessions. Keys for one session are handled
// strictly in arrival order; different sessions proceed in parallel.
type Manager struct {
	store   Store
	clock   calc.Clock
	maxKeys int

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager creates a Manager. maxKeys <= 0 selects DefaultMaxKeys.
func NewManager(store Store, clock calc.Clock, maxKeys int) *Manager {
	if maxKeys <= 0 {
		maxKeys = DefaultMaxKeys
	}
	return &Manager{
		store:   store,
		clock:   clock,
		maxKeys: maxKeys,
		locks:   make(map[string]*sessionLock),
	}
}

// Create starts a session in the empty state.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	now := m.clock.Now().UTC()
	s := &Session{
		ID:        uuid.NewString(),
		State:     keypad.Empty(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return s, nil
}

// Get returns the session's current snapshot.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// Press feeds keys to the session and saves the resulting state.
func (m *Manager) Press(ctx context.Context, id string, keys []string) (*Session, error) {
	if len(keys) > m.maxKeys {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyKeys, len(keys), m.maxKeys)
	}

	unlock := m.lock(id)
	defer unlock()

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	state := s.State
	for _, k := range keys {
		state = keypad.HandleKey(state, k)
	}
	s.State = state
	s.UpdatedAt = m.clock.Now().UTC()

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return s, nil
}

// Delete removes the session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()
	return m.store.Delete(ctx, id)
}

// lock takes the per-session mutex. Entries are dropped once no caller holds
// or waits for them.
func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &sessionLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
