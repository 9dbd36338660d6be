package keypad

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/warp/datecalc/calc"
)

// Reduce maps (state, intent) onto a new state. Transitions are all or
// nothing: an intent that does not apply returns s unchanged. A nil intent is
// ignored; an intent type Reduce does not know panics with ErrUnknownIntent.
func Reduce(s State, in Intent) State {
	if in == nil {
		return s
	}

	switch i := in.(type) {
	case Clear:
		return Empty()

	case Digit:
		if s.Mode() == ModeResult {
			return inputState(i.Char)
		}
		return s.withDisplay(s.Display + i.Char)

	case Delete:
		return reduceDelete(s)

	case Operate:
		return reduceOperate(s, i.Op)

	case Evaluate:
		return reduceEvaluate(s)

	case UnitSuffix:
		if s.Mode() == ModeResult {
			return inputState(string(i.Unit))
		}
		if !calc.AwaitsUnit(s.Display) {
			return s
		}
		return s.withDisplay(s.Display + string(i.Unit))

	case ReformatDuration:
		d, ok := s.Output.(calc.Duration)
		if !ok || s.Mode() != ModeResult {
			return s
		}
		reformatted, err := calc.Reformat(d, i.Unit)
		if err != nil {
			return s
		}
		return s.withOutput(reformatted)

	case SetDisplay:
		if s.Mode() == ModeResult {
			return inputState(i.Text)
		}
		return s.withDisplay(i.Text)

	case AppendMonth:
		base := s.activeDisplay()
		return s.fresh().withDisplay(strings.TrimSuffix(base, "-") + "-" + i.Month)

	case AppendDay:
		base := s.activeDisplay()
		if !strings.HasSuffix(base, "-") {
			base += "-"
		}
		return s.fresh().withDisplay(base + padDay(i.Day))

	default:
		panic(fmt.Errorf("%w: %T", ErrUnknownIntent, in))
	}
}

// reduceDelete is backspace. With nothing typed after a pending operator it
// takes the operator back and restores the left operand as input.
func reduceDelete(s State) State {
	if s.Mode() == ModeResult {
		return s
	}
	if s.Display == "" && s.pendingOperator() {
		return inputState(s.Expression.Left.DisplayText())
	}
	if s.Display == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s.Display)
	return s.withDisplay(s.Display[:len(s.Display)-size])
}

func reduceOperate(s State, op calc.Operator) State {
	if s.Mode() == ModeResult {
		return expressionState("", s.Output, op)
	}

	// Repeated operator taps swap the pending operator.
	if s.pendingOperator() && s.Display == "" {
		return expressionState("", s.Expression.Left, op)
	}

	operand := calc.ParseInput(s.Display)
	if !calc.IsOperand(operand) {
		return s
	}

	// Chain: evaluate what is pending, the result becomes the new left.
	if s.pendingOperator() {
		if res, err := calc.Calculate(s.Expression.Left, s.Expression.Operator, operand); err == nil {
			return expressionState("", res, op)
		}
	}
	return expressionState("", operand, op)
}

func reduceEvaluate(s State) State {
	if !s.pendingOperator() || s.Display == "" {
		return s
	}

	right := calc.ParseInput(s.Display)
	if !calc.IsOperand(right) {
		return s
	}

	res, err := calc.Calculate(s.Expression.Left, s.Expression.Operator, right)
	if err != nil {
		return s
	}

	return resultState(Expression{
		Left:     s.Expression.Left,
		Operator: s.Expression.Operator,
		Right:    right,
	}, res)
}

// activeDisplay is the text programmatic shortcuts extend. A committed result
// is discarded first, so shortcuts never extend a result.
func (s State) activeDisplay() string {
	if s.Mode() == ModeResult {
		return ""
	}
	return s.Display
}

func (s State) fresh() State {
	if s.Mode() == ModeResult {
		return Empty()
	}
	return s
}

func padDay(day string) string {
	if len(day) < 2 {
		return strings.Repeat("0", 2-len(day)) + day
	}
	return day
}
