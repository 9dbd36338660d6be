package keypad

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/warp/datecalc/calc"
)

// Shortcut is a button a presentation layer can offer. Pressing it sends Key
// through HandleKey like any other key.
type Shortcut struct {
	Label    string
	Hint     string
	Key      string
	Current  bool
	Disabled bool
}

// Shortcuts lists the buttons that fit the view's input mode:
//
//	default, complete: last/this/next year, month and day
//	year-entered:      the twelve months of the typed year
//	month-entered:     the days of the typed month, as a calendar
func Shortcuts(v View, clock calc.Clock) []Shortcut {
	today := calc.Today(clock)

	switch v.InputMode {
	case InputYearEntered:
		return monthShortcuts(v.Display, today)
	case InputMonthEntered:
		return dayShortcuts(v.CalendarDays)
	default:
		return defaultShortcuts(today)
	}
}

func defaultShortcuts(today calc.Date) []Shortcut {
	var out []Shortcut

	for n := -1; n <= 1; n++ {
		yr := strconv.Itoa(today.Year()+n) + "-"
		out = append(out, Shortcut{Label: yr, Key: PrefixSet + yr, Current: n == 0})
	}

	for n := -1; n <= 1; n++ {
		m := today.AddMonths(n)
		ym := fmt.Sprintf("%04d-%02d-", m.Year(), int(m.Month()))
		out = append(out, Shortcut{Label: ym, Hint: shortMonth(m.Month()), Key: PrefixSet + ym, Current: n == 0})
	}

	labels := map[int]string{-1: "yesterday", 0: "today", 1: "tomorrow"}
	for n := -1; n <= 1; n++ {
		d := today.AddDays(n)
		out = append(out, Shortcut{Label: labels[n], Hint: d.Text, Key: PrefixSet + d.Text, Current: n == 0})
	}
	return out
}

func monthShortcuts(display string, today calc.Date) []Shortcut {
	year := strings.TrimSuffix(display, "-")
	yr, _ := strconv.Atoi(year)

	out := make([]Shortcut, 0, 12)
	for m := time.January; m <= time.December; m++ {
		mm := fmt.Sprintf("%02d", int(m))
		out = append(out, Shortcut{
			Label:   mm + "-",
			Hint:    shortMonth(m),
			Key:     PrefixSet + year + "-" + mm + "-",
			Current: yr == today.Year() && m == today.Month(),
		})
	}
	return out
}

// dayShortcuts keeps only the grid weeks that touch the month; days of the
// neighbouring months stay visible but disabled.
func dayShortcuts(days []calc.CalendarDay) []Shortcut {
	var out []Shortcut
	for w := 0; w+7 <= len(days); w += 7 {
		week := days[w : w+7]
		if !touchesMonth(week) {
			continue
		}
		for _, d := range week {
			sc := Shortcut{
				Label:    fmt.Sprintf("%02d", d.Day),
				Disabled: !d.IsCurrentMonth,
				Current:  d.IsToday && d.IsCurrentMonth,
			}
			if d.IsCurrentMonth {
				sc.Key = PrefixDay + strconv.Itoa(d.Day)
			}
			out = append(out, sc)
		}
	}
	return out
}

func touchesMonth(week []calc.CalendarDay) bool {
	for _, d := range week {
		if d.IsCurrentMonth {
			return true
		}
	}
	return false
}

func shortMonth(m time.Month) string { return m.String()[:3] }
