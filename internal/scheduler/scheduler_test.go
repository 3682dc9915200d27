package scheduler_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/scheduler"
)

const tick = 10 * time.Millisecond

func newScheduler(t *testing.T) *scheduler.Scheduler {
	s := scheduler.New(zerolog.Nop())
	t.Cleanup(func() {
		_ = s.Shutdown(context.Background())
	})
	return s
}

func TestStartRunsRepeatedly(t *testing.T) {
	s := newScheduler(t)
	var count atomic.Int32

	handle, err := s.Start("user", tick, func(h scheduler.Handle) {
		count.Add(1)
	})
	require.NoError(t, err)
	assert.Equal(t, "user", handle.Key)

	require.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, tick)
	assert.Equal(t, []string{"user"}, s.Keys())
}

func TestStartReplacesExistingRegistration(t *testing.T) {
	s := newScheduler(t)
	var first, second atomic.Int32

	_, err := s.Start("user", 50*time.Millisecond, func(scheduler.Handle) { first.Add(1) })
	require.NoError(t, err)
	_, err = s.Start("user", tick, func(scheduler.Handle) { second.Add(1) })
	require.NoError(t, err)

	require.Eventually(t, func() bool { return second.Load() >= 3 }, time.Second, tick)
	assert.Zero(t, first.Load())
	assert.Equal(t, []string{"user"}, s.Keys())
}

func TestStopPreventsFurtherTicks(t *testing.T) {
	s := newScheduler(t)
	var count atomic.Int32

	_, err := s.Start("user", tick, func(scheduler.Handle) { count.Add(1) })
	require.NoError(t, err)
	require.Eventually(t, func() bool { return count.Load() >= 1 }, time.Second, tick)

	assert.True(t, s.Stop("user"))
	assert.False(t, s.Stop("user"))
	assert.Empty(t, s.Keys())

	// Let any tick dispatched before Stop drain.
	time.Sleep(3 * tick)
	stopped := count.Load()
	time.Sleep(10 * tick)
	assert.Equal(t, stopped, count.Load())
}

func TestCancelIgnoresStaleHandle(t *testing.T) {
	s := newScheduler(t)

	stale, err := s.Start("user", time.Hour, func(scheduler.Handle) {})
	require.NoError(t, err)
	current, err := s.Start("user", time.Hour, func(scheduler.Handle) {})
	require.NoError(t, err)

	assert.False(t, s.Cancel(stale))
	assert.Equal(t, []string{"user"}, s.Keys())
	assert.True(t, s.Cancel(current))
	assert.Empty(t, s.Keys())
}

func TestJobCanCancelItself(t *testing.T) {
	s := newScheduler(t)
	var count atomic.Int32

	_, err := s.Start("user", tick, func(h scheduler.Handle) {
		count.Add(1)
		s.Cancel(h)
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return len(s.Keys()) == 0 }, time.Second, tick)
	time.Sleep(5 * tick)
	assert.Equal(t, int32(1), count.Load())
}

func TestTicksDoNotOverlap(t *testing.T) {
	s := newScheduler(t)
	var running, maxRunning, count atomic.Int32

	_, err := s.Start("user", tick, func(scheduler.Handle) {
		n := running.Add(1)
		if n > maxRunning.Load() {
			maxRunning.Store(n)
		}
		time.Sleep(4 * tick)
		running.Add(-1)
		count.Add(1)
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return count.Load() >= 2 }, 2*time.Second, tick)
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestShutdownCancelsEverything(t *testing.T) {
	s := scheduler.New(zerolog.Nop())
	var count atomic.Int32

	for _, key := range []string{"a", "b", "c"} {
		_, err := s.Start(key, tick, func(scheduler.Handle) { count.Add(1) })
		require.NoError(t, err)
	}
	require.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, tick)

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Empty(t, s.Keys())
	afterShutdown := count.Load()
	time.Sleep(10 * tick)
	assert.Equal(t, afterShutdown, count.Load())

	_, err := s.Start("d", tick, func(scheduler.Handle) {})
	assert.ErrorIs(t, err, scheduler.ErrSchedulerClosed)
}

func TestStartRejectsInvalidInterval(t *testing.T) {
	s := newScheduler(t)
	_, err := s.Start("user", 0, func(scheduler.Handle) {})
	assert.ErrorIs(t, err, scheduler.ErrInvalidInterval)
}
