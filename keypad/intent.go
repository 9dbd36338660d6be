package keypad

import (
	"errors"

	"github.com/warp/datecalc/calc"
)

// ErrUnknownIntent marks a reducer call with an intent type it does not
// handle. It can only come from a wiring bug, so Reduce panics with it.
var ErrUnknownIntent = errors.New("unknown intent type")

// Intent is an abstract input event. The set is closed.
type Intent interface {
	intent()
}

// Clear resets to the empty state.
type Clear struct{}

// Digit appends one character to the display. Besides 0-9 it also carries a
// '-' that continues a date being typed.
type Digit struct{ Char string }

// Delete is backspace.
type Delete struct{}

// Operate applies a binary operator.
type Operate struct{ Op calc.Operator }

// Evaluate commits the pending expression.
type Evaluate struct{}

// UnitSuffix appends a unit letter to a duration literal.
type UnitSuffix struct{ Unit calc.Unit }

// ReformatDuration re-renders a date-difference result in another unit.
type ReformatDuration struct{ Unit calc.Unit }

// SetDisplay overwrites the display (shortcut buttons).
type SetDisplay struct{ Text string }

// AppendMonth adds a month to a year being typed.
type AppendMonth struct{ Month string }

// AppendDay adds a day to a year-month being typed.
type AppendDay struct{ Day string }

func (Clear) intent()            {}
func (Digit) intent()            {}
func (Delete) intent()           {}
func (Operate) intent()          {}
func (Evaluate) intent()         {}
func (UnitSuffix) intent()       {}
func (ReformatDuration) intent() {}
func (SetDisplay) intent()       {}
func (AppendMonth) intent()      {}
func (AppendDay) intent()        {}
