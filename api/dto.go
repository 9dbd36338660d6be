/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  keypad/calc types from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALUES:
  Every calculator value is sent as calc.ValueRecord: kind, display text
  and the typed payload (date, span, interval, integer).

SEE ALSO:
  - handlers.go: Uses these types
  - calc/codec.go: ValueRecord
*/
package api

import (
	"time"

	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/keypad"
	"github.com/warp/datecalc/session"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// KeysRequest feeds key tokens to a session, in order.
type KeysRequest struct {
	Keys []string `json:"keys"`
}

// ParseRequest classifies one input text.
type ParseRequest struct {
	Input string `json:"input"`
}

// CalculateRequest evaluates left op right without a session.
type CalculateRequest struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
}

// RunRequest replays a typed sequence on a fresh state. Input is split into
// single-character keys; Keys is appended as-is (for tokens like "set:...").
type RunRequest struct {
	Input string   `json:"input"`
	Keys  []string `json:"keys,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ViewDTO is the rendered calculator.
type ViewDTO struct {
	SessionID    string            `json:"session_id,omitempty"`
	Mode         keypad.Mode       `json:"mode"`
	Display      string            `json:"display"`
	Expression   *ExpressionDTO    `json:"expression,omitempty"`
	Output       *calc.ValueRecord `json:"output,omitempty"`
	DisplayValue *calc.ValueRecord `json:"display_value,omitempty"`
	InputMode    keypad.InputMode  `json:"input_mode"`
	Info         *InfoDTO          `json:"info,omitempty"`
	Calendar     *CalendarDTO      `json:"calendar,omitempty"`
	Shortcuts    []ShortcutDTO     `json:"shortcuts"`
	UpdatedAt    *time.Time        `json:"updated_at,omitempty"`
}

// ExpressionDTO is the pending or committed expression.
type ExpressionDTO struct {
	Left     *calc.ValueRecord `json:"left"`
	Operator calc.Operator     `json:"operator"`
	Right    *calc.ValueRecord `json:"right,omitempty"`
}

// InfoDTO is the hint next to the active value.
type InfoDTO struct {
	Kind    calc.Kind `json:"kind"`
	Value   string    `json:"value"`
	Weekday string    `json:"weekday"`
	Week    string    `json:"week"`
}

// CalendarDTO is a 42-day month grid.
type CalendarDTO struct {
	YearMonth string           `json:"year_month"`
	Days      []CalendarDayDTO `json:"days"`
}

type CalendarDayDTO struct {
	Date           string `json:"date"`
	Day            int    `json:"day"`
	IsCurrentMonth bool   `json:"is_current_month"`
	IsToday        bool   `json:"is_today"`
}

type ShortcutDTO struct {
	Label    string `json:"label"`
	Hint     string `json:"hint,omitempty"`
	Key      string `json:"key,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// HealthDTO answers /healthz.
type HealthDTO struct {
	Status string `json:"status"`
	Today  string `json:"today"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toViewDTO(v keypad.View, shortcuts []keypad.Shortcut) ViewDTO {
	dto := ViewDTO{
		Mode:         v.Mode,
		Display:      v.Display,
		Output:       calc.EncodeValue(v.Output),
		DisplayValue: calc.EncodeValue(v.DisplayValue),
		InputMode:    v.InputMode,
		Shortcuts:    make([]ShortcutDTO, 0, len(shortcuts)),
	}

	if v.Expression != nil {
		dto.Expression = &ExpressionDTO{
			Left:     calc.EncodeValue(v.Expression.Left),
			Operator: v.Expression.Operator,
			Right:    calc.EncodeValue(v.Expression.Right),
		}
	}
	if v.Info != nil {
		dto.Info = &InfoDTO{Kind: v.Info.Kind, Value: v.Info.Value, Weekday: v.Info.Weekday, Week: v.Info.Week}
	}
	if v.CalendarYearMonth != "" {
		cal := toCalendarDTO(v.CalendarYearMonth, v.CalendarDays)
		dto.Calendar = &cal
	}
	for _, sc := range shortcuts {
		dto.Shortcuts = append(dto.Shortcuts, ShortcutDTO(sc))
	}
	return dto
}

func toSessionViewDTO(s *session.Session, v keypad.View, shortcuts []keypad.Shortcut) ViewDTO {
	dto := toViewDTO(v, shortcuts)
	dto.SessionID = s.ID
	updated := s.UpdatedAt
	dto.UpdatedAt = &updated
	return dto
}

func toCalendarDTO(yearMonth string, days []calc.CalendarDay) CalendarDTO {
	out := CalendarDTO{YearMonth: yearMonth, Days: make([]CalendarDayDTO, 0, len(days))}
	for _, d := range days {
		out.Days = append(out.Days, CalendarDayDTO{
			Date:           d.Date.Text,
			Day:            d.Day,
			IsCurrentMonth: d.IsCurrentMonth,
			IsToday:        d.IsToday,
		})
	}
	return out
}
