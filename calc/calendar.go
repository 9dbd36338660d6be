package calc

import (
	"fmt"
	"time"
)

// CalendarCells is the size of a month grid: six Monday-first weeks.
const CalendarCells = 42

// CalendarDay is one cell of a month grid.
type CalendarDay struct {
	Date           Date
	Day            int
	IsCurrentMonth bool
	IsToday        bool
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(yearMonth string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidYearMonth, yearMonth)
	}
	return t.Year(), t.Month(), nil
}

// MonthCalendar returns the 42-day grid for yearMonth ("YYYY-MM"), starting on
// the Monday on or before the first of the month. An invalid yearMonth yields
// an empty grid.
func MonthCalendar(yearMonth string, today Date) []CalendarDay {
	year, month, err := ParseYearMonth(yearMonth)
	if err != nil {
		return nil
	}

	first := StartOfMonth(year, month)
	offset := (int(first.Weekday()) + 6) % 7 // Monday = 0
	start := first.AddDays(-offset)

	days := make([]CalendarDay, 0, CalendarCells)
	for i := 0; i < CalendarCells; i++ {
		current := start.AddDays(i)
		days = append(days, CalendarDay{
			Date:           current,
			Day:            current.Day(),
			IsCurrentMonth: current.Month() == month,
			IsToday:        current.Equal(today),
		})
	}
	return days
}
