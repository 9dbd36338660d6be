package calc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is returned when a ValueRecord cannot be decoded.
var ErrInvalidRecord = errors.New("invalid value record")

// ValueRecord is the flat, JSON-friendly form of a Value used by the API and
// the session stores.
type ValueRecord struct {
	Kind     Kind            `json:"kind"`
	Text     string          `json:"text"`
	Date     string          `json:"date,omitempty"`
	Span     *SpanRecord     `json:"span,omitempty"`
	Interval *IntervalRecord `json:"interval,omitempty"`
	Unit     Unit            `json:"unit,omitempty"`
	Integer  string          `json:"integer,omitempty"`
}

// SpanRecord mirrors Span.
type SpanRecord struct {
	Years  int `json:"years"`
	Months int `json:"months"`
	Weeks  int `json:"weeks"`
	Days   int `json:"days"`
}

// IntervalRecord mirrors Interval with ISO dates.
type IntervalRecord struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// EncodeValue flattens v. A nil value encodes to nil.
func EncodeValue(v Value) *ValueRecord {
	switch x := v.(type) {
	case Date:
		return &ValueRecord{Kind: KindDate, Text: x.Text, Date: x.Time.Format(DateLayout)}
	case PartialDate:
		return &ValueRecord{Kind: KindPartialDate, Text: x.Text}
	case Duration:
		rec := &ValueRecord{
			Kind: KindDuration,
			Text: x.Text,
			Span: &SpanRecord{Years: x.Span.Years, Months: x.Span.Months, Weeks: x.Span.Weeks, Days: x.Span.Days},
			Unit: x.Unit,
		}
		if x.Interval != nil {
			rec.Interval = &IntervalRecord{From: x.Interval.From.Text, To: x.Interval.To.Text}
		}
		return rec
	case Integer:
		return &ValueRecord{Kind: KindInteger, Text: x.Text, Integer: x.Value.String()}
	case Unknown:
		return &ValueRecord{Kind: KindUnknown, Text: x.Text}
	default:
		return nil
	}
}

// DecodeValue rebuilds a Value. A nil record decodes to a nil Value.
func DecodeValue(rec *ValueRecord) (Value, error) {
	if rec == nil {
		return nil, nil
	}

	switch rec.Kind {
	case KindDate:
		d, err := decodeDate(rec.Date)
		if err != nil {
			return nil, err
		}
		d.Text = rec.Text
		return d, nil

	case KindPartialDate:
		return PartialDate{Text: rec.Text}, nil

	case KindDuration:
		d := Duration{Text: rec.Text, Unit: rec.Unit}
		if rec.Span != nil {
			d.Span = Span{Years: rec.Span.Years, Months: rec.Span.Months, Weeks: rec.Span.Weeks, Days: rec.Span.Days}
		}
		if rec.Interval != nil {
			from, err := decodeDate(rec.Interval.From)
			if err != nil {
				return nil, err
			}
			to, err := decodeDate(rec.Interval.To)
			if err != nil {
				return nil, err
			}
			d.Interval = &Interval{From: from, To: to}
		}
		return d, nil

	case KindInteger:
		n, err := decimal.NewFromString(rec.Integer)
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q: %v", ErrInvalidRecord, rec.Integer, err)
		}
		return Integer{Text: rec.Text, Value: n}, nil

	case KindUnknown:
		return Unknown{Text: rec.Text}, nil

	default:
		return nil, fmt.Errorf("%w: kind %q", ErrInvalidRecord, rec.Kind)
	}
}

func decodeDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q: %v", ErrInvalidRecord, s, err)
	}
	return DateOf(t), nil
}
