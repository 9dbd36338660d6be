/*
Package sqlite provides a SQLite-backed session.Store.

PURPOSE:
  Keeps calculator sessions across server restarts. Each row holds the
  current keypad state of one session as JSON; nothing else is kept.

KEY TABLES:
  sessions: id, state_json, created_at, updated_at

INDEXES:
  - idx_sessions_updated_at: idle-session purge (PurgeIdle)

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Ordering of keys within one session
  is the session.Manager's job, not the store's.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time

USAGE:
  store, err := sqlite.New("./data/datecalc.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  mgr := session.NewManager(store, calc.RealClock{}, 0)

SEE ALSO:
  - session/session.go: Store interface
  - session/codec.go: state_json format
  - session/store/memory.go: In-memory implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/warp/datecalc/session"
)

// Store implements session.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_updated_at
		ON sessions(updated_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SESSION STORE
// =============================================================================

func (s *Store) Create(ctx context.Context, sess *session.Session) error {
	state, err := session.MarshalState(sess.State)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, state_json, created_at, updated_at) VALUES (?, ?, ?, ?)",
		sess.ID, string(state), formatTime(sess.CreatedAt), formatTime(sess.UpdatedAt),
	)
	if isUniqueConstraintError(err) {
		return session.ErrAlreadyExists
	}
	return err
}

func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stateJSON, createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT state_json, created_at, updated_at FROM sessions WHERE id = ?",
		id,
	).Scan(&stateJSON, &createdAt, &updatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &session.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, err
	}

	state, err := session.UnmarshalState([]byte(stateJSON))
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", id, err)
	}

	sess := &session.Session{ID: id, State: state}
	if sess.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("session %q: created_at: %w", id, err)
	}
	if sess.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("session %q: updated_at: %w", id, err)
	}
	return sess, nil
}

func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	state, err := session.MarshalState(sess.State)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET state_json = ?, updated_at = ? WHERE id = ?",
		string(state), formatTime(sess.UpdatedAt), sess.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res, sess.ID)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRow(res, id)
}

// =============================================================================
// UTILITIES
// =============================================================================

// PurgeIdle deletes sessions not written since before cutoff and returns how
// many were removed.
func (s *Store) PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE updated_at < ?",
		formatTime(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Count returns the number of stored sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}

// Helper functions

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// formatTime uses a fixed-width UTC layout so stored timestamps sort as text.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &session.NotFoundError{ID: id}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
