package lock

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	sem  chan struct{}
	refs int
}

// MemoryLocker holds locks in process memory. It only serializes requests
// served by the same process.
type MemoryLocker struct {
	wait time.Duration

	mu      sync.Mutex
	entries map[string]*memoryEntry
}

func NewMemoryLocker(wait time.Duration) *MemoryLocker {
	return &MemoryLocker{wait: wait, entries: make(map[string]*memoryEntry)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	e := l.acquireEntry(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseEntry(key)
		return nil, ctx.Err()
	case <-timer.C:
		l.releaseEntry(key)
		return nil, ErrNotAcquired
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.releaseEntry(key)
		})
	}, nil
}

func (l *MemoryLocker) acquireEntry(key string) *memoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &memoryEntry{sem: make(chan struct{}, 1)}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *MemoryLocker) releaseEntry(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := l.entries[key]
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

func (l *MemoryLocker) Ping(context.Context) error { return nil }

func (l *MemoryLocker) Close() error { return nil }
