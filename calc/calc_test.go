package calc_test

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/datecalc/calc"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func mustCalc(t *testing.T, left string, op calc.Operator, right string) calc.Value {
	t.Helper()
	res, err := calc.Calculate(calc.ParseInput(left), op, calc.ParseInput(right))
	require.NoError(t, err, "%s %s %s", left, op, right)
	return res
}

func date(y int, m time.Month, d int) calc.Date { return calc.NewDate(y, m, d) }

// =============================================================================
// CLASSIFICATION
// =============================================================================

func TestParseInput_Classification(t *testing.T) {
	tests := []struct {
		input string
		kind  calc.Kind
		text  string
	}{
		{"", calc.KindUnknown, ""},
		{"   ", calc.KindUnknown, ""},
		{"2024-03-15", calc.KindDate, "2024-03-15"},
		{" 2024-03-15 ", calc.KindDate, "2024-03-15"},
		{"2024-02-29", calc.KindDate, "2024-02-29"},
		{"2025-02-29", calc.KindUnknown, "2025-02-29"},
		{"2024-13-01", calc.KindUnknown, "2024-13-01"},
		{"2024-", calc.KindPartialDate, "2024-"},
		{"2024-1", calc.KindPartialDate, "2024-1"},
		{"2024-07", calc.KindPartialDate, "2024-07"},
		{"2024-07-", calc.KindPartialDate, "2024-07-"},
		{"2024-07-4", calc.KindPartialDate, "2024-07-4"},
		{"2y3m15d", calc.KindDuration, "2y3m15d"},
		{"-2y3m15d", calc.KindDuration, "-2y3m15d"},
		{"3W", calc.KindDuration, "3W"},
		{"5", calc.KindInteger, "5"},
		{"2024", calc.KindInteger, "2024"},
		{"-42", calc.KindInteger, "-42"},
		{"5x", calc.KindUnknown, "5x"},
		{"y", calc.KindUnknown, "y"},
		{"2y-3d", calc.KindUnknown, "2y-3d"},
		{"--5", calc.KindUnknown, "--5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := calc.ParseInput(tt.input)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.text, v.DisplayText())
		})
	}
}

func TestParseInput_IsTotal(t *testing.T) {
	// Every string classifies into exactly one of the five kinds.
	inputs := []string{
		"", "-", "+", "=", "0", "-0", "00000", "1d1d1d", "9999-99-99", "2024--01",
		"１２", "2024-01-01-", "1.5", "1e3", "d5", "99999999999999999999999d",
		"\t2y\n", "2024-1-1", "-2024-01-01", "日本",
	}
	valid := map[calc.Kind]bool{
		calc.KindDate: true, calc.KindPartialDate: true, calc.KindDuration: true,
		calc.KindInteger: true, calc.KindUnknown: true,
	}

	for _, in := range inputs {
		assert.NotPanics(t, func() {
			v := calc.ParseInput(in)
			require.NotNil(t, v)
			assert.True(t, valid[v.Kind()], "input %q gave kind %q", in, v.Kind())
		})
	}
}

func TestParseInput_DurationTokensAccumulate(t *testing.T) {
	v := calc.ParseInput("1d2y3d1m")
	d, ok := v.(calc.Duration)
	require.True(t, ok)
	assert.Equal(t, calc.Span{Years: 2, Months: 1, Days: 4}, d.Span)
	assert.Nil(t, d.Interval)

	neg := calc.ParseInput("-1y2w").(calc.Duration)
	assert.Equal(t, calc.Span{Years: -1, Weeks: -2}, neg.Span)
}

func TestParseInput_DurationOverflowIsUnknown(t *testing.T) {
	// GIVEN a unit repeated until its sum no longer fits an int
	maxInt := strconv.Itoa(math.MaxInt)

	// THEN a single token still parses but the sum does not
	assert.Equal(t, calc.KindDuration, calc.ParseInput(maxInt+"y").Kind())
	assert.Equal(t, calc.KindUnknown, calc.ParseInput(maxInt+"y1y").Kind())
	assert.Equal(t, calc.KindUnknown, calc.ParseInput("-"+maxInt+"d"+maxInt+"d").Kind())
}

func TestParseInput_IntegerIsNeverDuration(t *testing.T) {
	v := calc.ParseInput("5")
	i, ok := v.(calc.Integer)
	require.True(t, ok)
	assert.True(t, i.Value.Equal(decimal.NewFromInt(5)))
}

func TestFormatSpan_RoundTrip(t *testing.T) {
	inputs := []string{"2y6m15d", "-2y3m15d", "3w", "1d1d", "0d", "-7d", "10y2w"}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			d := calc.ParseInput(in).(calc.Duration)
			formatted := calc.FormatSpan(d.Span)
			again, ok := calc.ParseInput(strings.ReplaceAll(formatted, calc.ThinSpace, "")).(calc.Duration)
			require.True(t, ok, "formatted %q should re-parse as duration", formatted)
			assert.Equal(t, d.Span, again.Span)
		})
	}
}

func TestFormatSpan(t *testing.T) {
	assert.Equal(t, "2y\u20096m\u200915d", calc.FormatSpan(calc.Span{Years: 2, Months: 6, Days: 15}))
	assert.Equal(t, "0d", calc.FormatSpan(calc.Span{}))
	assert.Equal(t, "-1y\u20092w", calc.FormatSpan(calc.Span{Years: -1, Weeks: -2}))
	assert.Equal(t, "3m", calc.FormatSpan(calc.Span{Months: 3}))
}

// =============================================================================
// ARITHMETIC
// =============================================================================

func TestCalculate_DatePlusDuration(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		op    calc.Operator
		right string
		want  string
	}{
		{"Jan 31 + 1 month clamps to Feb 28", "2025-01-31", calc.OpAdd, "1m", "2025-02-28"},
		{"Jan 31 + 1 month in leap year", "2024-01-31", calc.OpAdd, "1m", "2024-02-29"},
		{"Aug 31 + 1 month clamps to Sep 30", "2024-08-31", calc.OpAdd, "1m", "2024-09-30"},
		{"Mar 31 - 1 month lands on Feb 29", "2024-03-31", calc.OpSub, "1m", "2024-02-29"},
		{"Feb 29 + 1 year", "2024-02-29", calc.OpAdd, "1y", "2025-02-28"},
		{"Feb 29 - 1 year", "2024-02-29", calc.OpSub, "1y", "2023-02-28"},
		{"Dec 31 + 1 day crosses year", "2024-12-31", calc.OpAdd, "1d", "2025-01-01"},
		{"Long day count", "2020-05-31", calc.OpAdd, "1917d", "2025-08-30"},
		{"Minus days", "2024-03-01", calc.OpSub, "45d", "2024-01-16"},
		{"Composite duration", "2020-01-01", calc.OpAdd, "2y6m15d", "2022-07-16"},
		{"Weeks", "2024-01-01", calc.OpAdd, "2w", "2024-01-15"},
		{"Negative duration added", "2024-03-10", calc.OpAdd, "-10d", "2024-02-29"},
		{"Month step back across year", "2024-01-15", calc.OpSub, "1m", "2023-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := mustCalc(t, tt.left, tt.op, tt.right)
			d, ok := res.(calc.Date)
			require.True(t, ok, "expected a date, got %T", res)
			assert.Equal(t, tt.want, d.Text)
		})
	}
}

func TestCalculate_DurationPlusDate(t *testing.T) {
	res := mustCalc(t, "10d", calc.OpAdd, "2024-02-25")
	assert.Equal(t, "2024-03-06", res.DisplayText())

	_, err := calc.Calculate(calc.ParseInput("10d"), calc.OpSub, calc.ParseInput("2024-02-25"))
	assert.ErrorIs(t, err, calc.ErrNotApplicable)
}

func TestCalculate_DateMinusDate(t *testing.T) {
	tests := []struct {
		left, right string
		want        string
	}{
		{"2024-02-29", "2020-02-29", "4y"},
		{"2024-01-01", "1990-01-01", "34y"},
		{"2024-06-15", "2024-06-15", "0d"},
		{"2024-01-01", "2024-01-10", "-9d"},
		{"2026-01-12", "1991-01-13", "34y\u2009364d"},
	}

	for _, tt := range tests {
		t.Run(tt.left+" - "+tt.right, func(t *testing.T) {
			res := mustCalc(t, tt.left, calc.OpSub, tt.right)
			d, ok := res.(calc.Duration)
			require.True(t, ok)
			assert.Equal(t, tt.want, d.Text)
			assert.Equal(t, calc.UnitYears, d.Unit)
			require.NotNil(t, d.Interval)
			assert.Equal(t, tt.left, d.Interval.To.Text)
			assert.Equal(t, tt.right, d.Interval.From.Text)
		})
	}
}

func TestCalculate_Integers(t *testing.T) {
	assert.Equal(t, "150", mustCalc(t, "100", calc.OpAdd, "50").DisplayText())
	assert.Equal(t, "-25", mustCalc(t, "25", calc.OpSub, "50").DisplayText())
	assert.Equal(t, "100000000000000000000",
		mustCalc(t, "99999999999999999999", calc.OpAdd, "1").DisplayText())
}

func TestCalculate_NotApplicable(t *testing.T) {
	tests := []struct {
		name  string
		left  string
		op    calc.Operator
		right string
	}{
		{"duration - duration", "2d", calc.OpSub, "1d"},
		{"duration + duration", "2d", calc.OpAdd, "1d"},
		{"date + date", "2024-01-01", calc.OpAdd, "2024-01-02"},
		{"integer + date", "5", calc.OpAdd, "2024-01-02"},
		{"date + integer", "2024-01-02", calc.OpAdd, "5"},
		{"unknown operand", "abc", calc.OpAdd, "5"},
		{"partial date operand", "2024-01", calc.OpAdd, "5d"},
		{"unsupported operator", "5", calc.Operator("*"), "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := calc.Calculate(calc.ParseInput(tt.left), tt.op, calc.ParseInput(tt.right))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, calc.ErrNotApplicable)

			var opErr *calc.OperationError
			require.True(t, errors.As(err, &opErr))
			assert.Equal(t, tt.op, opErr.Operator)
			assert.True(t, calc.IsClientError(err))
		})
	}

	_, err := calc.Calculate(calc.ParseInput("5"), calc.Operator("*"), calc.ParseInput("5"))
	assert.ErrorIs(t, err, calc.ErrUnsupportedOperator)
	_, err = calc.Calculate(calc.ParseInput("2d"), calc.OpSub, calc.ParseInput("1d"))
	assert.NotErrorIs(t, err, calc.ErrUnsupportedOperator)
}

func TestCalculate_DateRange(t *testing.T) {
	maxInt := strconv.Itoa(math.MaxInt)

	t.Run("results outside four-digit years are not applicable", func(t *testing.T) {
		tests := []struct {
			name  string
			left  string
			op    calc.Operator
			right string
		}{
			{"huge years", "2024-01-01", calc.OpAdd, maxInt + "y"},
			{"huge years subtracted", "2024-01-01", calc.OpSub, maxInt + "y"},
			{"huge months", "2024-01-01", calc.OpAdd, maxInt + "m"},
			{"huge weeks", "2024-01-01", calc.OpAdd, maxInt + "w"},
			{"huge days", "2024-01-01", calc.OpSub, maxInt + "d"},
			{"five-digit year", "2024-01-01", calc.OpAdd, "8000y"},
			{"past year 9999 by a day", "9999-12-31", calc.OpAdd, "1d"},
			{"before year 0000", "0000-01-01", calc.OpSub, "1d"},
			{"duration first", "8000y", calc.OpAdd, "2024-01-01"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				res, err := calc.Calculate(calc.ParseInput(tt.left), tt.op, calc.ParseInput(tt.right))
				assert.Nil(t, res)
				assert.ErrorIs(t, err, calc.ErrNotApplicable)
			})
		}
	})

	t.Run("edges of the range", func(t *testing.T) {
		assert.Equal(t, "9999-12-31", mustCalc(t, "9999-12-30", calc.OpAdd, "1d").DisplayText())
		assert.Equal(t, "0000-01-01", mustCalc(t, "0000-01-02", calc.OpSub, "1d").DisplayText())
	})

	t.Run("date text parses back to the same date", func(t *testing.T) {
		res := mustCalc(t, "2024-01-01", calc.OpAdd, "7975y")
		assert.Equal(t, "9999-01-01", res.DisplayText())
		assert.Equal(t, calc.KindDate, calc.ParseInput(res.DisplayText()).Kind())
	})
}

// =============================================================================
// REFORMAT
// =============================================================================

func TestReformat_DateDifference(t *testing.T) {
	tests := []struct {
		name        string
		left, right string
		unit        calc.Unit
		want        string
	}{
		{"Decades in days", "2026-01-12", "1991-01-13", calc.UnitDays, "12783d"},
		{"Months and days", "2026-03-15", "2019-11-22", calc.UnitMonths, "75m\u200921d"},
		{"Leap year in days", "2025-01-01", "2024-01-01", calc.UnitDays, "366d"},
		{"Common year in days", "2026-01-01", "2025-01-01", calc.UnitDays, "365d"},
		{"Feb 28 to Mar 1, leap", "2024-03-01", "2024-02-28", calc.UnitDays, "2d"},
		{"Feb 28 to Mar 1, common", "2025-03-01", "2025-02-28", calc.UnitDays, "1d"},
		{"Weeks and days", "2024-01-20", "2024-01-01", calc.UnitWeeks, "2w\u20095d"},
		{"Years months days", "2026-03-15", "2019-11-22", calc.UnitYears, "6y\u20093m\u200921d"},
		{"Negative in weeks", "2024-01-01", "2024-01-20", calc.UnitWeeks, "-2w\u20095d"},
		{"Month-end start", "2025-03-01", "2025-01-31", calc.UnitMonths, "1m\u20091d"},
		{"Centuries in days", "2024-01-01", "1600-01-01", calc.UnitDays, "154863d"},
		{"Centuries in weeks", "2024-01-01", "1600-01-01", calc.UnitWeeks, "22123w\u20092d"},
		{"Centuries in years", "2024-01-01", "1600-01-01", calc.UnitYears, "424y"},
		{"Whole range in days", "9999-12-31", "0000-01-01", calc.UnitDays, "3652424d"},
		{"Negative centuries in days", "1600-01-01", "2024-01-01", calc.UnitDays, "-154863d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustCalc(t, tt.left, calc.OpSub, tt.right).(calc.Duration)
			got, err := calc.Reformat(d, tt.unit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.unit, got.Unit)
			assert.Equal(t, *d.Interval, *got.Interval)
		})
	}
}

func TestReformat_RequiresInterval(t *testing.T) {
	typed := calc.ParseInput("3m").(calc.Duration)
	_, err := calc.Reformat(typed, calc.UnitDays)
	assert.ErrorIs(t, err, calc.ErrNoInterval)

	d := mustCalc(t, "2024-03-01", calc.OpSub, "2024-01-01").(calc.Duration)
	_, err = calc.Reformat(d, calc.Unit("h"))
	assert.ErrorIs(t, err, calc.ErrInvalidUnit)
}

// =============================================================================
// RELATIVE HINTS, WEEKS, CALENDAR
// =============================================================================

func TestFormatRelative(t *testing.T) {
	today := date(2025, time.June, 15)

	tests := []struct {
		name string
		date calc.Date
		want string
	}{
		{"Today", today, "today"},
		{"Few days ahead", date(2025, time.June, 18), "+3d"},
		{"Few days back", date(2025, time.June, 10), "-5d"},
		{"Months ahead", date(2025, time.September, 20), "+3m\u20095d"},
		{"Years ahead", date(2027, time.July, 16), "+2y\u20091m\u20091d"},
		{"Years back", date(2023, time.June, 14), "-2y\u20091d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.FormatRelative(tt.date, today))
		})
	}
}

func TestWeekInfoOf(t *testing.T) {
	info := calc.WeekInfoOf(date(2025, time.January, 13))
	assert.Equal(t, "Monday", info.Weekday)
	assert.Equal(t, "W03", info.Week)

	// Dec 30 2024 belongs to ISO week 1 of 2025.
	assert.Equal(t, "W01", calc.WeekInfoOf(date(2024, time.December, 30)).Week)
}

func TestMonthCalendar(t *testing.T) {
	today := date(2024, time.February, 14)
	days := calc.MonthCalendar("2024-02", today)

	require.Len(t, days, calc.CalendarCells)
	assert.Equal(t, "2024-01-29", days[0].Date.Text, "grid starts on the Monday before Feb 1")
	assert.Equal(t, time.Monday, days[0].Date.Weekday())
	assert.False(t, days[0].IsCurrentMonth)
	assert.True(t, days[3].IsCurrentMonth)
	assert.Equal(t, 1, days[3].Day)
	assert.True(t, days[16].IsToday)

	var inMonth int
	for _, d := range days {
		if d.IsCurrentMonth {
			inMonth++
		}
	}
	assert.Equal(t, 29, inMonth)

	assert.Empty(t, calc.MonthCalendar("2024-13", today))
	assert.Empty(t, calc.MonthCalendar("nope", today))
}

func TestToday_UsesClockCalendarDay(t *testing.T) {
	clock := calc.FixedClock(time.Date(2025, time.March, 9, 23, 30, 0, 0, time.FixedZone("X", -5*3600)))
	assert.Equal(t, "2025-03-09", calc.Today(clock).Text)
}

// =============================================================================
// CODEC
// =============================================================================

func TestValueCodec_PreservesInterval(t *testing.T) {
	d := mustCalc(t, "2026-03-15", calc.OpSub, "2019-11-22").(calc.Duration)
	d, err := calc.Reformat(d, calc.UnitMonths)
	require.NoError(t, err)

	back, err := calc.DecodeValue(calc.EncodeValue(d))
	require.NoError(t, err)
	assert.Equal(t, d, back)

	// Decoded value still reformats.
	again, err := calc.Reformat(back.(calc.Duration), calc.UnitDays)
	require.NoError(t, err)
	assert.Equal(t, "2305d", again.Text)
}

func TestValueCodec_NilAndInvalid(t *testing.T) {
	assert.Nil(t, calc.EncodeValue(nil))

	v, err := calc.DecodeValue(nil)
	assert.NoError(t, err)
	assert.Nil(t, v)

	_, err = calc.DecodeValue(&calc.ValueRecord{Kind: "banana"})
	assert.ErrorIs(t, err, calc.ErrInvalidRecord)

	_, err = calc.DecodeValue(&calc.ValueRecord{Kind: calc.KindInteger, Integer: "x"})
	assert.ErrorIs(t, err, calc.ErrInvalidRecord)
}
