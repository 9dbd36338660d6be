/*
main.go - HTTP server entry point

PURPOSE:
  Serves the date calculator API: calculator sessions plus the stateless
  parse/calculate/run/calendar endpoints.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (viper: defaults, config.yaml, DATECALC_* env)
  3. Build the zap logger
  4. Open the session store (memory LRU or SQLite)
  5. Configure HTTP router and start server with graceful shutdown

COMMAND-LINE FLAGS:
  -config  Config file path (default: search ./config, ., /etc/datecalc)
  -port    HTTP server port, overrides config
  -db      SQLite database path; selects the sqlite backend

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (http_server.shutdown_timeout)
  3. Stop the purge scheduler and close the database
  4. Exit

EXAMPLES:
  # In-memory sessions on the default port
  ./server

  # Sessions survive restarts
  ./server -db="./data/datecalc.db"

  # Environment overrides
  DATECALC_HTTP_SERVER_PORT=3000 DATECALC_LOGGER_ENCODING=json ./server

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Configuration keys
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/datecalc/api"
	"github.com/warp/datecalc/calc"
	"github.com/warp/datecalc/config"
	"github.com/warp/datecalc/logging"
	"github.com/warp/datecalc/session"
	"github.com/warp/datecalc/session/store"
	"github.com/warp/datecalc/store/sqlite"
)

func main() {
	// Flags
	configPath := flag.String("config", "", "config file path")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (selects the sqlite backend)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.HTTPServer.Port = *port
	}
	if *dbPath != "" {
		cfg.Session.Backend = config.BackendSQLite
		cfg.Session.SQLitePath = *dbPath
	}

	log, err := logging.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	clock := calc.RealClock{}

	// Initialize store
	var sessions session.Store
	switch cfg.Session.Backend {
	case config.BackendSQLite:
		st, err := sqlite.New(cfg.Session.SQLitePath)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer st.Close()
		sessions = st

		purge := api.NewPurgeScheduler(st, cfg.Session.TTL, log)
		purge.CheckInterval = cfg.Session.PurgeInterval
		purge.Start()
		defer purge.Stop()
	default:
		sessions = store.NewMemory(cfg.Session.Capacity, cfg.Session.TTL)
	}

	// Initialize handler
	mgr := session.NewManager(sessions, clock, cfg.Session.MaxKeys)
	handler := api.NewHandler(mgr, clock, log)
	handler.MaxKeys = cfg.Session.MaxKeys

	opts := api.RouterOptions{CORSOrigins: cfg.HTTPServer.CORSOrigins}
	if cfg.RateLimit.Enabled {
		opts.RateLimiter = api.NewRateLimiter(cfg.RateLimit.RequestsPerMin, cfg.RateLimit.Burst)
	}

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPServer.Port),
		Handler:      api.NewRouter(handler, opts),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.Int("port", cfg.HTTPServer.Port),
			zap.String("backend", cfg.Session.Backend),
			zap.String("environment", cfg.Environment.Name),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
