// Package lock provides per-key mutual exclusion for booking a room, either
// in process or shared across instances through Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hotel/internal/config"
)

// ErrNotAcquired is returned when a lock could not be taken within the
// configured wait.
var ErrNotAcquired = errors.New("lock not acquired")

type Locker interface {
	// Lock blocks until key is held, the wait elapses, or ctx ends. The
	// returned func releases the lock and is safe to call once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
	Ping(ctx context.Context) error
	Close() error
}

// New returns a Redis locker when REDIS_URL is set and an in-process
// locker otherwise.
func New(cfg *config.Config, log *zap.Logger) (Locker, error) {
	if cfg.RedisURL == "" {
		if log != nil {
			log.Info("using in-process room locks")
		}
		return NewMemoryLocker(cfg.LockWait), nil
	}

	l, err := NewRedisLockerFromURL(cfg.RedisURL, cfg.LockTTL, cfg.LockWait, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := l.Ping(ctx); err != nil {
		_ = l.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return l, nil
}
