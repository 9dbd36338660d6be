/*
Package calc is the value and arithmetic engine of the date calculator.

PURPOSE:
  Turns free-form text into typed values (dates, durations, integers),
  combines two typed values with an operator, and renders durations under
  a chosen unit granularity. Everything in this package is pure: no I/O,
  no shared state, and "now" is only read through a Clock.

KEY CONCEPTS IN THIS FILE (value.go):
  - Value: sealed sum type over Date, PartialDate, Duration, Integer, Unknown
  - Kind:  discriminator used by transport and storage layers
  - IsOperand: which values may sit on either side of an expression

SEE ALSO:
  - parse.go:      ParseInput classification
  - arithmetic.go: Calculate
  - format.go:     FormatSpan, FormatInterval, Reformat
*/
package calc

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALUE - Typed result of classifying input text
// =============================================================================

// Value is one of Date, PartialDate, Duration, Integer or Unknown.
// The set is closed: only types in this package implement it.
type Value interface {
	// Kind reports the variant.
	Kind() Kind
	// DisplayText is the text shown for the value.
	DisplayText() string

	sealed()
}

type Kind string

const (
	KindDate        Kind = "date"
	KindPartialDate Kind = "partial-date"
	KindDuration    Kind = "duration"
	KindInteger     Kind = "integer"
	KindUnknown     Kind = "unknown"
)

// Date is a full calendar date.
type Date struct {
	Text string
	// Time is midnight UTC of the calendar day.
	Time time.Time
}

// PartialDate is an ISO date prefix that is still being typed, e.g. "2024-07".
type PartialDate struct {
	Text string
}

// Duration is a signed calendar quantity.
type Duration struct {
	Text string
	Span Span
	// Interval is set only when the duration came from subtracting two dates.
	Interval *Interval
	// Unit is the granularity last used to format Text. Empty for typed durations.
	Unit Unit
}

// Integer is a signed whole number of arbitrary size.
type Integer struct {
	Text  string
	Value decimal.Decimal
}

// Unknown is text that does not classify as anything else.
type Unknown struct {
	Text string
}

func (Date) Kind() Kind        { return KindDate }
func (PartialDate) Kind() Kind { return KindPartialDate }
func (Duration) Kind() Kind    { return KindDuration }
func (Integer) Kind() Kind     { return KindInteger }
func (Unknown) Kind() Kind     { return KindUnknown }

func (d Date) DisplayText() string        { return d.Text }
func (p PartialDate) DisplayText() string { return p.Text }
func (d Duration) DisplayText() string    { return d.Text }
func (i Integer) DisplayText() string     { return i.Text }
func (u Unknown) DisplayText() string     { return u.Text }

func (Date) sealed()        {}
func (PartialDate) sealed() {}
func (Duration) sealed()    {}
func (Integer) sealed()     {}
func (Unknown) sealed()     {}

// NewDate builds a Date for the given calendar day with canonical text.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf truncates t to its calendar day (in t's own location) and wraps it.
func DateOf(t time.Time) Date {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Date{Text: day.Format(DateLayout), Time: day}
}

// NewInteger wraps n with its canonical decimal text.
func NewInteger(n decimal.Decimal) Integer {
	return Integer{Text: n.String(), Value: n}
}

// NewDuration wraps a span with its canonical formatted text.
func NewDuration(span Span) Duration {
	return Duration{Text: FormatSpan(span), Span: span}
}

// IsOperand reports whether v can be either side of an expression.
// Unknown and PartialDate values are never accepted, and nil is not a value.
func IsOperand(v Value) bool {
	switch v.(type) {
	case Date, Duration, Integer:
		return true
	default:
		return false
	}
}

// HasInterval reports whether v is a duration born from a date subtraction.
func HasInterval(v Value) bool {
	d, ok := v.(Duration)
	return ok && d.Interval != nil
}
