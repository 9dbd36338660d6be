package calc

import (
	"math"
	"time"
)

// =============================================================================
// CALENDAR DAY ARITHMETIC
// =============================================================================

// DateLayout is the ISO-8601 calendar date layout used for all date text.
const DateLayout = "2006-01-02"

// Dates are written with four-digit years.
const (
	MinYear = 0
	MaxYear = 9999
)

// Largest month and day steps that can still land between MinYear and MaxYear.
const (
	maxMonthStep = (MaxYear - MinYear + 1) * 12
	maxDayStep   = (MaxYear - MinYear + 1) * 366
)

// Before reports whether d is an earlier calendar day than other.
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }

// After reports whether d is a later calendar day than other.
func (d Date) After(other Date) bool { return d.Time.After(other.Time) }

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

// Year, Month, Day and Weekday expose the calendar fields.
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }

// AddDays moves d by n days.
func (d Date) AddDays(n int) Date { return DateOf(d.Time.AddDate(0, 0, n)) }

// AddMonths moves d by n months, clamping the day to the end of the target
// month: Jan 31 + 1 month is Feb 28 (or Feb 29 in a leap year).
func (d Date) AddMonths(n int) Date {
	total := d.Year()*12 + int(d.Month()) - 1 + n
	year, month := floorDiv(total, 12), time.Month(floorMod(total, 12)+1)
	day := d.Day()
	if last := DaysIn(year, month); day > last {
		day = last
	}
	return NewDate(year, month, day)
}

// Add applies a span to d. Years and months move together as one calendar
// step (clamped once), then weeks and days are added as whole days.
func (d Date) Add(s Span) Date {
	return d.AddMonths(s.Years*12 + s.Months).AddDays(s.Weeks*7 + s.Days)
}

// Sub applies the negation of s.
func (d Date) Sub(s Span) Date { return d.Add(s.Neg()) }

// AddSpan is Add for untrusted spans. It reports false when the span's
// components overflow or the result falls outside MinYear..MaxYear.
func (d Date) AddSpan(s Span) (Date, bool) {
	months, ok := mulAdd(s.Years, 12, s.Months)
	if !ok || months < -maxMonthStep || months > maxMonthStep {
		return Date{}, false
	}
	days, ok := mulAdd(s.Weeks, 7, s.Days)
	if !ok || days < -maxDayStep || days > maxDayStep {
		return Date{}, false
	}
	res := d.AddMonths(months).AddDays(days)
	return res, res.InRange()
}

// InRange reports whether d has a four-digit year.
func (d Date) InRange() bool {
	return d.Year() >= MinYear && d.Year() <= MaxYear
}

// DaysBetween counts calendar days from -> to (negative when to is earlier).
// Both dates sit at UTC midnight, so the Unix seconds differ by whole days.
func DaysBetween(from, to Date) int {
	return int((to.Time.Unix() - from.Time.Unix()) / 86400)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfMonth returns the first day of the given month.
func StartOfMonth(year int, month time.Month) Date { return NewDate(year, month, 1) }

// EndOfMonth returns the last day of the month.
func EndOfMonth(year int, month time.Month) Date {
	return NewDate(year, month, DaysIn(year, month))
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int { return a - floorDiv(a, b)*b }

// addInt adds without wrapping around.
func addInt(a, b int) (int, bool) {
	if (b > 0 && a > math.MaxInt-b) || (b < 0 && a < math.MinInt-b) {
		return 0, false
	}
	return a + b, true
}

// mulAdd returns a*m + b for a positive m without wrapping around.
func mulAdd(a, m, b int) (int, bool) {
	if a > math.MaxInt/m || a < math.MinInt/m {
		return 0, false
	}
	return addInt(a*m, b)
}
