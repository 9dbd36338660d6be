/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client IP from X-Forwarded-For / X-Real-IP
  3. Logger:     zap request logging (logging.RequestLogger)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests for browser keypads
  6. RateLimit:  Per-IP token buckets on /api (optional)

ROUTE GROUPS:
  /api/sessions/*       Stateful calculator sessions
  /api/parse            Input classification
  /api/calculate        Binary operations
  /api/run              Stateless key replay
  /api/calendar/*       Month grids
  /healthz              Liveness

SECURITY NOTE:
  No authentication. Session IDs are random UUIDs and act as bearer
  handles; anyone holding one can drive that session.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/warp/datecalc/logging"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string
	// RateLimiter, when set, guards every /api route.
	RateLimiter *RateLimiter
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(h.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(opts.RateLimiter.Middleware)
		}

		// Session routes
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", h.CreateSession)
			r.Get("/{id}", h.GetSession)
			r.Delete("/{id}", h.DeleteSession)
			r.Post("/{id}/keys", h.PressKeys)
		})

		// Stateless routes
		r.Post("/parse", h.Parse)
		r.Post("/calculate", h.Calculate)
		r.Post("/run", h.Run)
		r.Get("/calendar/{yearMonth}", h.Calendar)
	})

	return r
}
