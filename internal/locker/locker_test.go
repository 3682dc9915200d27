package locker_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suistake/bridge-saga-service/internal/locker"
)

func TestLocalLockerSerializesKey(t *testing.T) {
	l := locker.NewLocalLocker()
	var inside, maxInside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "1:relayer")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside.Load())
}

func TestLocalLockerKeysAreIndependent(t *testing.T) {
	l := locker.NewLocalLocker()
	unlockA, err := l.Lock(context.Background(), "1:relayer")
	require.NoError(t, err)
	defer unlockA()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	unlockB, err := l.Lock(ctx, "8453:relayer")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := locker.NewLocalLocker()
	unlock, err := l.Lock(context.Background(), "key")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "key")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Releasing twice must not free a slot held by someone else.
	unlock()
	unlock()
	next, err := l.Lock(context.Background(), "key")
	require.NoError(t, err)
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel2()
	_, err = l.Lock(ctx2, "key")
	assert.Error(t, err)
	next()
}
