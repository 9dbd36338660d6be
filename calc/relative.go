package calc

import (
	"fmt"
	"time"
)

// Clock abstracts time.Now() to allow deterministic testing.
// Callers read it once per query and never cache the result.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Today returns the clock's current calendar day.
func Today(c Clock) Date {
	return DateOf(c.Now())
}

// FormatRelative describes date relative to today: "today", or a signed span
// such as "+3d" or "-2m 4d". Spans up to 30 days are shown in days, up to a
// year in months and days, beyond that in years, months and days.
func FormatRelative(date, today Date) string {
	if date.Equal(today) {
		return "today"
	}

	iv := Interval{From: today, To: date}
	total := abs(iv.Days())

	units := []Unit{UnitYears, UnitMonths, UnitDays}
	switch {
	case total <= 30:
		units = []Unit{UnitDays}
	case total <= 365:
		units = []Unit{UnitMonths, UnitDays}
	}

	text := FormatSpan(iv.Span(units...).Abs())
	if iv.Negative() {
		return "-" + text
	}
	return "+" + text
}

// WeekInfo is the weekday name and ISO week label of a date.
type WeekInfo struct {
	Weekday string
	Week    string
}

// WeekInfoOf returns e.g. {"Monday", "W03"}.
func WeekInfoOf(d Date) WeekInfo {
	_, week := d.Time.ISOWeek()
	return WeekInfo{
		Weekday: d.Weekday().String(),
		Week:    fmt.Sprintf("W%02d", week),
	}
}
