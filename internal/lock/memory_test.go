package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLocker_ExcludesSameKey(t *testing.T) {
	l := NewMemoryLocker(time.Second)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		holders int
		maxSeen int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "room:1")
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			holders++
			if holders > maxSeen {
				maxSeen = holders
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.entries)
}

func TestMemoryLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l := NewMemoryLocker(50 * time.Millisecond)
	ctx := context.Background()

	u1, err := l.Lock(ctx, "room:1")
	require.NoError(t, err)
	defer u1()

	u2, err := l.Lock(ctx, "room:2")
	require.NoError(t, err)
	u2()
}

func TestMemoryLocker_WaitElapses(t *testing.T) {
	l := NewMemoryLocker(20 * time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "room:1")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "room:1")
	assert.ErrorIs(t, err, ErrNotAcquired)

	unlock()
	unlock()

	again, err := l.Lock(ctx, "room:1")
	require.NoError(t, err)
	again()
}

func TestMemoryLocker_ContextCancelled(t *testing.T) {
	l := NewMemoryLocker(time.Second)

	unlock, err := l.Lock(context.Background(), "room:1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Lock(ctx, "room:1")
	assert.ErrorIs(t, err, context.Canceled)
}
