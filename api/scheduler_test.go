package api

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/datecalc/keypad"
	"github.com/warp/datecalc/session"
	"github.com/warp/datecalc/store/sqlite"
)

type fakePurger struct {
	mu      sync.Mutex
	cutoffs []time.Time
	err     error
}

func (f *fakePurger) PurgeIdle(_ context.Context, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, cutoff)
	return 3, f.err
}

func (f *fakePurger) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestPurgeScheduler_PurgeOnce(t *testing.T) {
	p := &fakePurger{}
	ps := NewPurgeScheduler(p, 2*time.Hour, nil)
	ps.Clock = testClock

	assert.Equal(t, int64(3), ps.PurgeOnce(context.Background()))
	require.Len(t, p.cutoffs, 1)
	assert.Equal(t, time.Time(testClock).Add(-2*time.Hour), p.cutoffs[0])

	p.err = errors.New("disk full")
	assert.Equal(t, int64(0), ps.PurgeOnce(context.Background()))
}

func TestPurgeScheduler_StartRunsImmediately(t *testing.T) {
	p := &fakePurger{}
	ps := NewPurgeScheduler(p, time.Hour, nil)
	ps.CheckInterval = time.Hour

	ps.Start()
	ps.Start()
	assert.Eventually(t, func() bool { return p.calls() == 1 }, time.Second, 5*time.Millisecond)
	ps.Stop()
	ps.Stop()

	assert.Equal(t, 1, p.calls())
}

func TestPurgeScheduler_SQLite(t *testing.T) {
	ctx := context.Background()
	st, err := sqlite.New(":memory:")
	require.NoError(t, err)
	defer st.Close()

	now := time.Time(testClock)
	stale := &session.Session{ID: "stale", State: keypad.Empty(), CreatedAt: now.Add(-48 * time.Hour), UpdatedAt: now.Add(-48 * time.Hour)}
	fresh := &session.Session{ID: "fresh", State: keypad.Empty(), CreatedAt: now, UpdatedAt: now}
	require.NoError(t, st.Create(ctx, stale))
	require.NoError(t, st.Create(ctx, fresh))

	ps := NewPurgeScheduler(st, 24*time.Hour, nil)
	ps.Clock = testClock
	assert.Equal(t, int64(1), ps.PurgeOnce(ctx))

	_, err = st.Get(ctx, "stale")
	assert.True(t, session.IsNotFound(err))
	_, err = st.Get(ctx, "fresh")
	assert.NoError(t, err)
}
