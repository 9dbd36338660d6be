/*
scheduler.go - Idle session purge scheduler

PURPOSE:
  The SQLite session store never forgets on its own. The scheduler
  periodically deletes sessions not written for longer than the TTL, the
  same lifetime the in-memory LRU enforces by itself.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Purges once immediately on Start
  - Logs how many sessions were removed

USAGE:
  scheduler := NewPurgeScheduler(store, 24*time.Hour, log)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - store/sqlite/sqlite.go: PurgeIdle
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/datecalc/calc"
)

// Purger deletes sessions idle since before cutoff.
type Purger interface {
	PurgeIdle(ctx context.Context, cutoff time.Time) (int64, error)
}

// PurgeScheduler drops idle sessions from a Purger.
type PurgeScheduler struct {
	Store         Purger
	TTL           time.Duration
	CheckInterval time.Duration
	Clock         calc.Clock
	Log           *zap.Logger

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewPurgeScheduler creates a scheduler checking every ten minutes.
func NewPurgeScheduler(store Purger, ttl time.Duration, log *zap.Logger) *PurgeScheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PurgeScheduler{
		Store:         store,
		TTL:           ttl,
		CheckInterval: 10 * time.Minute,
		Clock:         calc.RealClock{},
		Log:           log.Named("purge"),
	}
}

// Start begins the scheduler. Calling Start twice is a no-op.
func (ps *PurgeScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)

	go ps.run()

	ps.Log.Info("started", zap.Duration("interval", ps.CheckInterval), zap.Duration("ttl", ps.TTL))
}

// Stop stops the scheduler and waits for a running purge to finish.
func (ps *PurgeScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker == nil {
		return
	}
	ps.ticker.Stop()
	close(ps.stop)
	ps.wg.Wait()
	ps.ticker = nil
	ps.Log.Info("stopped")
}

func (ps *PurgeScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.PurgeOnce(context.Background())

	for {
		select {
		case <-ps.ticker.C:
			ps.PurgeOnce(context.Background())
		case <-ps.stop:
			return
		}
	}
}

// PurgeOnce removes sessions idle longer than the TTL and returns the count.
func (ps *PurgeScheduler) PurgeOnce(ctx context.Context) int64 {
	cutoff := ps.Clock.Now().Add(-ps.TTL)

	n, err := ps.Store.PurgeIdle(ctx, cutoff)
	if err != nil {
		ps.Log.Error("purge failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		ps.Log.Info("purged idle sessions", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n
}
