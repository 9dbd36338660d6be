package session

import (
	"encoding/json"
	"fmt"

	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/keypad"
)

// StateRecord is the stored form of a keypad.State.
type StateRecord struct {
	Display    string            `json:"display"`
	Expression *ExpressionRecord `json:"expression,omitempty"`
	Output     *calc.ValueRecord `json:"output,omitempty"`
}

// ExpressionRecord is the stored form of a keypad.Expression.
type ExpressionRecord struct {
	Left     *calc.ValueRecord `json:"left"`
	Operator calc.Operator     `json:"operator"`
	Right    *calc.ValueRecord `json:"right,omitempty"`
}

// EncodeState flattens s.
func EncodeState(s keypad.State) StateRecord {
	rec := StateRecord{
		Display: s.Display,
		Output:  calc.EncodeValue(s.Output),
	}
	if s.Expression != nil {
		rec.Expression = &ExpressionRecord{
			Left:     calc.EncodeValue(s.Expression.Left),
			Operator: s.Expression.Operator,
			Right:    calc.EncodeValue(s.Expression.Right),
		}
	}
	return rec
}

// DecodeState rebuilds a keypad.State, rejecting records no key sequence
// could have produced.
func DecodeState(rec StateRecord) (keypad.State, error) {
	out, err := calc.DecodeValue(rec.Output)
	if err != nil {
		return keypad.State{}, fmt.Errorf("%w: output: %v", ErrInvalidState, err)
	}
	s := keypad.State{Display: rec.Display, Output: out}

	if rec.Expression == nil {
		if out != nil {
			return keypad.State{}, fmt.Errorf("%w: output without expression", ErrInvalidState)
		}
		return s, nil
	}

	left, err := calc.DecodeValue(rec.Expression.Left)
	if err != nil {
		return keypad.State{}, fmt.Errorf("%w: left: %v", ErrInvalidState, err)
	}
	if left == nil {
		return keypad.State{}, fmt.Errorf("%w: expression without left operand", ErrInvalidState)
	}
	if _, ok := calc.ParseOperator(string(rec.Expression.Operator)); !ok {
		return keypad.State{}, fmt.Errorf("%w: operator %q", ErrInvalidState, rec.Expression.Operator)
	}
	right, err := calc.DecodeValue(rec.Expression.Right)
	if err != nil {
		return keypad.State{}, fmt.Errorf("%w: right: %v", ErrInvalidState, err)
	}

	s.Expression = &keypad.Expression{Left: left, Operator: rec.Expression.Operator, Right: right}
	return s, nil
}

// MarshalState encodes s as JSON.
func MarshalState(s keypad.State) ([]byte, error) {
	return json.Marshal(EncodeState(s))
}

// UnmarshalState decodes JSON written by MarshalState.
func UnmarshalState(data []byte) (keypad.State, error) {
	var rec StateRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return keypad.State{}, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return DecodeState(rec)
}
