package calc

// Operator is a binary operator between two values.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
)

// ParseOperator accepts "+" or "-".
func ParseOperator(s string) (Operator, bool) {
	switch Operator(s) {
	case OpAdd, OpSub:
		return Operator(s), true
	}
	return "", false
}

// Calculate combines left and right with op.
//
// Supported combinations:
//
//	date - date         -> duration (years + days, keeps the interval)
//	date +/- duration   -> date
//	duration + date     -> date
//	integer +/- integer -> integer
//
// Date results must keep a four-digit year. Every other combination, and a
// date result outside years 0000-9999, returns an *OperationError wrapping
// ErrNotApplicable.
func Calculate(left Value, op Operator, right Value) (Value, error) {
	if op != OpAdd && op != OpSub {
		return nil, notApplicable(left, op, right)
	}

	switch l := left.(type) {
	case Date:
		switch r := right.(type) {
		case Date:
			if op == OpSub {
				return subtractDates(l, r), nil
			}
		case Duration:
			span := r.Span
			if op == OpSub {
				span = span.Neg()
			}
			if res, ok := l.AddSpan(span); ok {
				return res, nil
			}
		}

	case Duration:
		if r, ok := right.(Date); ok && op == OpAdd {
			if res, ok := r.AddSpan(l.Span); ok {
				return res, nil
			}
		}

	case Integer:
		if r, ok := right.(Integer); ok {
			if op == OpAdd {
				return NewInteger(l.Value.Add(r.Value)), nil
			}
			return NewInteger(l.Value.Sub(r.Value)), nil
		}
	}

	return nil, notApplicable(left, op, right)
}

// subtractDates measures left - right in years and residual days.
func subtractDates(left, right Date) Duration {
	iv := &Interval{From: right, To: left}
	span := iv.Span(UnitYears, UnitDays)
	return Duration{
		Text:     FormatSpan(span),
		Span:     span,
		Interval: iv,
		Unit:     UnitYears,
	}
}

func notApplicable(left Value, op Operator, right Value) error {
	return &OperationError{Left: kindOf(left), Operator: op, Right: kindOf(right)}
}

func kindOf(v Value) Kind {
	if v == nil {
		return KindUnknown
	}
	return v.Kind()
}
