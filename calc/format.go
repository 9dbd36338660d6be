package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// ThinSpace separates unit tokens in formatted durations.
const ThinSpace = "\u2009"

// unitSets maps a requested granularity to the units an interval is split into.
var unitSets = map[Unit][]Unit{
	UnitDays:   {UnitDays},
	UnitWeeks:  {UnitWeeks, UnitDays},
	UnitMonths: {UnitMonths, UnitDays},
	UnitYears:  {UnitYears, UnitMonths, UnitDays},
}

// FormatSpan renders the non-zero components as "2y 6m 15d" (thin-space
// separated), "0d" when all are zero, with one leading '-' for negative spans.
func FormatSpan(s Span) string {
	a := s.Abs()
	parts := make([]string, 0, len(Units))
	for _, u := range Units {
		if n := a.Get(u); n != 0 {
			parts = append(parts, strconv.Itoa(n)+string(u))
		}
	}
	if len(parts) == 0 {
		return "0" + string(UnitDays)
	}

	text := strings.Join(parts, ThinSpace)
	if s.Negative() {
		return "-" + text
	}
	return text
}

// FormatInterval splits the interval into the unit set for unit and formats it.
func FormatInterval(iv Interval, unit Unit) (string, error) {
	units, ok := unitSets[unit]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
	return FormatSpan(iv.Span(units...)), nil
}

// Reformat recomputes a date-difference duration at another granularity.
// Typed durations have no interval and cannot be reformatted.
func Reformat(d Duration, unit Unit) (Duration, error) {
	if d.Interval == nil {
		return Duration{}, ErrNoInterval
	}
	units, ok := unitSets[unit]
	if !ok {
		return Duration{}, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}

	span := d.Interval.Span(units...)
	iv := *d.Interval
	return Duration{
		Text:     FormatSpan(span),
		Span:     span,
		Interval: &iv,
		Unit:     unit,
	}, nil
}
