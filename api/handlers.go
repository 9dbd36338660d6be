/*
handlers.go - HTTP API handlers for the date calculator

PURPOSE:
  Exposes calculator sessions and the stateless calc operations via REST.
  Handles HTTP request/response and JSON, delegates to keypad, calc and
  session.

ENDPOINTS:
  Sessions:
    POST   /api/sessions               Create session (empty state)
    GET    /api/sessions/{id}          Current view
    POST   /api/sessions/{id}/keys     Apply keys, return view
    DELETE /api/sessions/{id}          Drop session

  Stateless:
    POST   /api/parse                  Classify one input
    POST   /api/calculate              left op right
    POST   /api/run                    Replay keys on a fresh state
    GET    /api/calendar/{yearMonth}   42-day month grid

  Health:
    GET    /healthz

ERROR HANDLING:
  Errors are returned as JSON ErrorResponse with:
  - 400: Malformed body, invalid operator or year-month, too many keys
  - 404: Unknown or expired session
  - 422: Operation not applicable to the operand kinds
  - 500: Internal errors (logged)

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/keypad"
	"github.com/warp/datecalc/session"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Sessions *session.Manager
	Clock    calc.Clock
	Log      *zap.Logger

	// MaxKeys bounds stateless /api/run requests; sessions enforce their own.
	MaxKeys int
}

// NewHandler creates a handler. A nil logger discards output.
func NewHandler(sessions *session.Manager, clock calc.Clock, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		Sessions: sessions,
		Clock:    clock,
		Log:      log,
		MaxKeys:  session.DefaultMaxKeys,
	}
}

// =============================================================================
// SESSION ENDPOINTS
// =============================================================================

// CreateSession starts a calculator in the empty state.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sessions.Create(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.Log.Debug("session created", zap.String("session_id", s.ID))
	writeJSON(w, http.StatusCreated, h.sessionView(s))
}

// GetSession returns the current view of a session.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionView(s))
}

// PressKeys applies keys to a session in order.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	var req KeysRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s, err := h.Sessions.Press(r.Context(), chi.URLParam(r, "id"), req.Keys)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.sessionView(s))
}

// DeleteSession drops a session.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// STATELESS ENDPOINTS
// =============================================================================

// Parse classifies one input text. Unparseable text is a valid answer
// (kind "unknown"), not an error.
func (h *Handler) Parse(w http.ResponseWriter, r *http.Request) {
	var req ParseRequest
	if !decodeBody(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, calc.EncodeValue(calc.ParseInput(req.Input)))
}

// Calculate evaluates left op right.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op, ok := calc.ParseOperator(req.Operator)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid operator", fmt.Errorf("operator %q", req.Operator))
		return
	}

	res, err := calc.Calculate(calc.ParseInput(req.Left), op, calc.ParseInput(req.Right))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc.EncodeValue(res))
}

// Run replays keys on a fresh state and returns the view.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if !decodeBody(w, r, &req) {
		return
	}

	keys := append(keypad.SplitKeys(req.Input), req.Keys...)
	if len(keys) > h.MaxKeys {
		h.handleError(w, r, fmt.Errorf("%w: %d > %d", session.ErrTooManyKeys, len(keys), h.MaxKeys))
		return
	}

	v := keypad.Project(keypad.Run(keys...), h.Clock)
	writeJSON(w, http.StatusOK, toViewDTO(v, keypad.Shortcuts(v, h.Clock)))
}

// Calendar returns the month grid for {yearMonth} (YYYY-MM).
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	yearMonth := chi.URLParam(r, "yearMonth")
	if _, _, err := calc.ParseYearMonth(yearMonth); err != nil {
		h.handleError(w, r, err)
		return
	}
	days := calc.MonthCalendar(yearMonth, calc.Today(h.Clock))
	writeJSON(w, http.StatusOK, toCalendarDTO(yearMonth, days))
}

// Health reports liveness and the server's idea of today.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok", Today: calc.Today(h.Clock).Text})
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) sessionView(s *session.Session) ViewDTO {
	v := keypad.Project(s.State, h.Clock)
	return toSessionViewDTO(s, v, keypad.Shortcuts(v, h.Clock))
}

// handleError maps domain errors onto status codes.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case session.IsNotFound(err):
		writeError(w, http.StatusNotFound, "session not found", err)
	case errors.Is(err, calc.ErrNotApplicable):
		writeError(w, http.StatusUnprocessableEntity, "operation not applicable", err)
	case session.IsClientError(err):
		writeError(w, http.StatusBadRequest, "invalid request", err)
	default:
		h.Log.Error("request failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
