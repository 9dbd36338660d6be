/*
session.go - Calculator sessions and their persistence interface

PURPOSE:
  A session is one user's calculator: an ID plus the current keypad.State.
  The HTTP API creates a session, feeds it keys and reads back the view.

CURRENT SNAPSHOT ONLY:
  A Store keeps the latest state of each session and nothing else. There is
  no history of earlier states and no undo beyond what backspace does.

IMPLEMENTATIONS:
  - session/store/memory.go: expiring in-memory LRU (default)
  - store/sqlite/sqlite.go:  SQLite, survives restarts

SEE ALSO:
  - manager.go: serialised key handling per session
  - codec.go:   JSON form of keypad.State
*/
package session

import (
	"context"
	"time"

	"github.com/warp/datecalc/keypad"
)

// Session is one calculator instance.
type Session struct {
	ID        string
	State     keypad.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store persists session snapshots.
type Store interface {
	// Create stores a new session. The ID must not exist yet.
	Create(ctx context.Context, s *Session) error

	// Get returns the session or ErrNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Save overwrites the snapshot of an existing session.
	// Returns ErrNotFound if the session expired or was deleted meanwhile.
	Save(ctx context.Context, s *Session) error

	// Delete removes the session. Deleting an unknown ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
