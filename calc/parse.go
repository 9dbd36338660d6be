package calc

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	fullDatePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	partialDatePattern = regexp.MustCompile(`^\d{4}-\d{0,2}-?\d{0,2}$`)
	durationPattern    = regexp.MustCompile(`(?i)^-?(\d+[ymwd])+$`)
	durationToken      = regexp.MustCompile(`(?i)(\d+)([ymwd])`)
	integerPattern     = regexp.MustCompile(`^-?\d+$`)

	// pendingUnitPattern matches a duration literal whose last number is still
	// waiting for its unit letter, e.g. "2y3".
	pendingUnitPattern = regexp.MustCompile(`(?i)^-?(\d+[ymwd])*\d+$`)
)

// ParseInput classifies text into exactly one Value. It never fails: anything
// that is not a date, partial date, duration or integer becomes Unknown.
func ParseInput(input string) Value {
	text := strings.TrimSpace(input)
	if text == "" {
		return Unknown{}
	}

	if fullDatePattern.MatchString(text) {
		if t, err := time.Parse(DateLayout, text); err == nil {
			return Date{Text: text, Time: t}
		}
	}

	if partialDatePattern.MatchString(text) && !fullDatePattern.MatchString(text) {
		return PartialDate{Text: text}
	}

	if span, ok := parseSpan(text); ok {
		return Duration{Text: text, Span: span}
	}

	if integerPattern.MatchString(text) {
		if n, err := decimal.NewFromString(text); err == nil {
			return Integer{Text: text, Value: n}
		}
	}

	return Unknown{Text: text}
}

// parseSpan reads a signed sequence of <int><unit> tokens. Repeated units add
// up, and a single leading '-' negates the whole span.
func parseSpan(text string) (Span, bool) {
	if !durationPattern.MatchString(text) {
		return Span{}, false
	}

	negative := strings.HasPrefix(text, "-")
	var span Span
	for _, m := range durationToken.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Span{}, false
		}
		u, _ := ParseUnit(m[2])
		sum, ok := addInt(span.Get(u), n)
		if !ok {
			return Span{}, false
		}
		span = span.With(u, sum)
	}

	if negative {
		span = span.Neg()
	}
	return span, true
}

// AwaitsUnit reports whether text is a duration literal whose trailing number
// still needs a unit letter.
func AwaitsUnit(text string) bool {
	return pendingUnitPattern.MatchString(text)
}

// ContinuesDate reports whether a '-' typed after text belongs to a date
// ("2024" or "2024-7") rather than being a subtraction.
func ContinuesDate(text string) bool {
	return yearOnlyPattern.MatchString(text) || yearMonthPattern.MatchString(text)
}

var (
	yearOnlyPattern  = regexp.MustCompile(`^\d{4}$`)
	yearMonthPattern = regexp.MustCompile(`^\d{4}-\d{1,2}$`)
)
