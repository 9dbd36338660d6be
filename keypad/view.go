package keypad

import (
	"regexp"

	"github.com/warp/datecalc/calc"
)

// InputMode tells a presentation layer which shortcut panel fits the display.
type InputMode string

const (
	InputComplete     InputMode = "complete"
	InputMonthEntered InputMode = "month-entered"
	InputYearEntered  InputMode = "year-entered"
	InputDefault      InputMode = "default"
)

var (
	completePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthEnteredPattern = regexp.MustCompile(`^\d{4}-\d{2}-?$`)
	yearEnteredPattern  = regexp.MustCompile(`^\d{4}-?$`)
)

// InputModeOf derives the input mode from the shape of display alone.
func InputModeOf(display string) InputMode {
	switch {
	case completePattern.MatchString(display):
		return InputComplete
	case monthEnteredPattern.MatchString(display):
		return InputMonthEntered
	case yearEnteredPattern.MatchString(display):
		return InputYearEntered
	default:
		return InputDefault
	}
}

// Info is the hint shown next to the active value.
type Info struct {
	// Kind is what Value holds: a relative duration ("+3d") for a date on
	// display, or a date previewing a pending date ± duration.
	Kind    calc.Kind
	Value   string
	Weekday string
	Week    string
}

// View is everything a presentation layer needs to render a State.
type View struct {
	Mode              Mode
	Display           string
	Expression        *Expression
	Output            calc.Value
	DisplayValue      calc.Value
	InputMode         InputMode
	Info              *Info
	CalendarYearMonth string
	CalendarDays      []calc.CalendarDay
}

// Project derives the view model. The clock is read once.
func Project(s State, clock calc.Clock) View {
	today := calc.Today(clock)
	parsed := calc.ParseInput(s.Display)

	v := View{
		Mode:       s.Mode(),
		Display:    s.Display,
		Expression: s.Expression,
		Output:     s.Output,
		InputMode:  InputModeOf(s.Display),
	}

	switch {
	case s.Output != nil:
		v.DisplayValue = s.Output
	case s.Display != "":
		v.DisplayValue = parsed
	}

	v.Info = infoFor(v.DisplayValue, s.Expression, parsed, today)

	if v.InputMode == InputMonthEntered {
		v.CalendarYearMonth = s.Display[:7]
		v.CalendarDays = calc.MonthCalendar(v.CalendarYearMonth, today)
	}
	return v
}

func infoFor(active calc.Value, expr *Expression, parsed calc.Value, today calc.Date) *Info {
	if d, ok := active.(calc.Date); ok {
		week := calc.WeekInfoOf(d)
		return &Info{
			Kind:    calc.KindDuration,
			Value:   calc.FormatRelative(d, today),
			Weekday: week.Weekday,
			Week:    week.Week,
		}
	}

	if expr == nil {
		return nil
	}
	if _, ok := expr.Left.(calc.Date); !ok {
		return nil
	}
	if _, ok := parsed.(calc.Duration); !ok {
		return nil
	}

	preview, err := calc.Calculate(expr.Left, expr.Operator, parsed)
	if err != nil {
		return nil
	}
	d, ok := preview.(calc.Date)
	if !ok {
		return nil
	}
	week := calc.WeekInfoOf(d)
	return &Info{Kind: calc.KindDate, Value: d.Text, Weekday: week.Weekday, Week: week.Week}
}
