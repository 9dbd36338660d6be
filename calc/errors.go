/*
errors.go - Centralized error types for the calculation engine

ERROR CATEGORIES:
  1. Inapplicable operations - the operand types/operator do not combine
  2. Reformat failures - durations without a source interval
  3. Input validation - malformed year-month or unit arguments

Unparseable input is NOT an error: it classifies as Unknown.

USAGE:
    res, err := calc.Calculate(left, calc.OpSub, right)
    if errors.Is(err, calc.ErrNotApplicable) {
        // keep the previous state
    }
*/
package calc

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotApplicable is returned when the operand kinds and operator have no
	// defined result (e.g. duration - duration, anything with Unknown).
	ErrNotApplicable = errors.New("operation not applicable")

	// ErrUnsupportedOperator is returned for operators other than + and -.
	// It wraps ErrNotApplicable.
	ErrUnsupportedOperator = fmt.Errorf("unsupported operator: %w", ErrNotApplicable)

	// ErrNoInterval is returned when reformatting a duration that did not come
	// from a date subtraction.
	ErrNoInterval = errors.New("duration has no source interval")

	// ErrInvalidUnit is returned for unit letters other than y, m, w, d.
	ErrInvalidUnit = errors.New("invalid duration unit")

	// ErrInvalidYearMonth is returned when a YYYY-MM argument cannot be parsed.
	ErrInvalidYearMonth = errors.New("invalid year-month")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// OperationError describes an operand combination without a result.
type OperationError struct {
	Left     Kind
	Operator Operator
	Right    Kind
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", e.Left, e.Operator, e.Right, e.Unwrap())
}

func (e *OperationError) Unwrap() error {
	if _, ok := ParseOperator(string(e.Operator)); !ok {
		return ErrUnsupportedOperator
	}
	return ErrNotApplicable
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotApplicable) ||
		errors.Is(err, ErrNoInterval) ||
		errors.Is(err, ErrInvalidUnit) ||
		errors.Is(err, ErrInvalidYearMonth)
}
