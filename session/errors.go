package session

import (
	"errors"
	"fmt"

	"github.com/warp/datecalc/calc"
)

var (
	// ErrNotFound is returned for unknown, expired or deleted sessions.
	ErrNotFound = errors.New("session not found")

	// ErrAlreadyExists is returned by Create for a duplicate ID.
	ErrAlreadyExists = errors.New("session already exists")

	// ErrInvalidState is returned when a stored snapshot cannot be decoded.
	ErrInvalidState = errors.New("invalid session state")

	// ErrTooManyKeys is returned when one request carries more keys than the
	// manager accepts.
	ErrTooManyKeys = errors.New("too many keys")
)

// NotFoundError names the missing session.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session %q: %v", e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// IsNotFound reports whether err means the session does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrTooManyKeys) || calc.IsClientError(err)
}
