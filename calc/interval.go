package calc

// =============================================================================
// SPAN - Signed {years, months, weeks, days} quantity
// =============================================================================

// Span is a calendar quantity. Components are applied to dates in the order
// years, months, weeks, days. A well-formed span never mixes signs.
type Span struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Unit is a duration unit letter.
type Unit string

const (
	UnitYears  Unit = "y"
	UnitMonths Unit = "m"
	UnitWeeks  Unit = "w"
	UnitDays   Unit = "d"
)

// Units lists all units in formatting order.
var Units = []Unit{UnitYears, UnitMonths, UnitWeeks, UnitDays}

// ParseUnit accepts a single unit letter in either case.
func ParseUnit(s string) (Unit, bool) {
	switch s {
	case "y", "Y":
		return UnitYears, true
	case "m", "M":
		return UnitMonths, true
	case "w", "W":
		return UnitWeeks, true
	case "d", "D":
		return UnitDays, true
	}
	return "", false
}

// Get returns the component for u.
func (s Span) Get(u Unit) int {
	switch u {
	case UnitYears:
		return s.Years
	case UnitMonths:
		return s.Months
	case UnitWeeks:
		return s.Weeks
	default:
		return s.Days
	}
}

// With returns a copy of s with the component for u set to n.
func (s Span) With(u Unit, n int) Span {
	switch u {
	case UnitYears:
		s.Years = n
	case UnitMonths:
		s.Months = n
	case UnitWeeks:
		s.Weeks = n
	default:
		s.Days = n
	}
	return s
}

// Neg flips the sign of every component.
func (s Span) Neg() Span {
	return Span{Years: -s.Years, Months: -s.Months, Weeks: -s.Weeks, Days: -s.Days}
}

// Negative reports whether any component is below zero.
func (s Span) Negative() bool {
	return s.Years < 0 || s.Months < 0 || s.Weeks < 0 || s.Days < 0
}

// IsZero reports whether all components are zero.
func (s Span) IsZero() bool { return s == Span{} }

// Abs returns s with every component made non-negative.
func (s Span) Abs() Span {
	return Span{Years: abs(s.Years), Months: abs(s.Months), Weeks: abs(s.Weeks), Days: abs(s.Days)}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// =============================================================================
// INTERVAL - The ordered date pair behind a date subtraction
// =============================================================================

// Interval records a subtraction To - From. It is negative when To is before
// From; the span is then measured from To up to From and negated.
type Interval struct {
	From Date
	To   Date
}

// Negative reports whether the interval runs backwards in time.
func (iv Interval) Negative() bool { return iv.To.Before(iv.From) }

// Bounds returns the interval's endpoints in chronological order.
func (iv Interval) Bounds() (earlier, later Date) {
	if iv.Negative() {
		return iv.To, iv.From
	}
	return iv.From, iv.To
}

// Days returns the signed number of calendar days in the interval.
func (iv Interval) Days() int { return DaysBetween(iv.From, iv.To) }

// Span decomposes the interval into the given units, largest first. Each unit
// takes as many whole steps as fit without passing the later date; the
// smallest unit absorbs the remainder. The result carries the interval's sign.
func (iv Interval) Span(units ...Unit) Span {
	earlier, later := iv.Bounds()

	var result Span
	cursor := earlier
	for _, u := range Units {
		if !containsUnit(units, u) {
			continue
		}
		n := unitDiff(u, cursor, later)
		result = result.With(u, n)
		highWater := earlier.Add(result)
		if highWater.After(later) {
			result = result.With(u, result.Get(u)-1)
			cursor = earlier.Add(result)
			if cursor.After(later) {
				result = result.With(u, result.Get(u)-1)
				cursor = earlier.Add(result)
			}
		} else {
			cursor = highWater
		}
	}

	if iv.Negative() {
		return result.Neg()
	}
	return result
}

func unitDiff(u Unit, a, b Date) int {
	switch u {
	case UnitYears:
		return b.Year() - a.Year()
	case UnitMonths:
		return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	case UnitWeeks:
		return DaysBetween(a, b) / 7
	default:
		return DaysBetween(a, b)
	}
}

func containsUnit(units []Unit, u Unit) bool {
	for _, x := range units {
		if x == u {
			return true
		}
	}
	return false
}

// String returns a string representation of the interval.
func (iv Interval) String() string {
	return "[" + iv.From.Text + ", " + iv.To.Text + "]"
}
