/*
Package keypad is the interaction state machine of the date calculator.

PURPOSE:
  Holds what the user has typed so far, at most one pending binary
  expression, and a committed result. A pure reducer maps one intent onto
  a new state; nothing is mutated in place.

MODES:
  result:     Output is set, Display is empty
  expression: an operator is pending, waiting for the right operand
  input:      neither, Display may hold text

FLOW:
  key -> KeyToIntent -> Reduce -> new State -> Project -> View

SEE ALSO:
  - reducer.go:   transition rules per intent
  - keys.go:      key token classification
  - view.go:      view-model projection
  - ../calc:      parsing and arithmetic
*/
package keypad

import (
	"github.com/warp/datecalc/calc"
)

// Mode is derived from a State, never stored.
type Mode string

const (
	ModeInput      Mode = "input"
	ModeExpression Mode = "expression"
	ModeResult     Mode = "result"
)

// Expression is one pending binary operation. Right stays nil until an
// evaluation commits.
type Expression struct {
	Left     calc.Value
	Operator calc.Operator
	Right    calc.Value
}

// State is an immutable snapshot of the calculator.
type State struct {
	Display    string
	Expression *Expression
	Output     calc.Value
}

// Empty is the initial state.
func Empty() State { return State{} }

// Mode reports result, expression or input mode.
func (s State) Mode() Mode {
	switch {
	case s.Output != nil:
		return ModeResult
	case s.Expression != nil:
		return ModeExpression
	default:
		return ModeInput
	}
}

// IsEmpty reports whether s equals the initial state.
func (s State) IsEmpty() bool {
	return s.Display == "" && s.Expression == nil && s.Output == nil
}

// pendingOperator reports an expression waiting for its right operand.
func (s State) pendingOperator() bool {
	return s.Expression != nil && s.Expression.Operator != "" && s.Expression.Right == nil
}

// Constructors. Each transition builds a whole new State from one of these.

func inputState(display string) State {
	return State{Display: display}
}

func expressionState(display string, left calc.Value, op calc.Operator) State {
	return State{Display: display, Expression: &Expression{Left: left, Operator: op}}
}

func resultState(expr Expression, output calc.Value) State {
	return State{Expression: &expr, Output: output}
}

func (s State) withDisplay(display string) State {
	next := State{Display: display, Output: s.Output}
	if s.Expression != nil {
		expr := *s.Expression
		next.Expression = &expr
	}
	return next
}

func (s State) withOutput(output calc.Value) State {
	next := s.withDisplay(s.Display)
	next.Output = output
	return next
}
