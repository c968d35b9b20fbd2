package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"hotel/internal/pkg/logger"
)

const (
	redisKeyPrefix = "hotel:lock:"
	retryInterval  = 25 * time.Millisecond
	releaseTimeout = 2 * time.Second
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock re-taken by another holder is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a single-instance Redis lock (SET NX PX with a random
// token). The TTL bounds how long a crashed holder blocks the room.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	log    *zap.Logger
}

func NewRedisLocker(client *redis.Client, ttl, wait time.Duration, log *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait, log: logger.OrNop(log).Named("lock")}
}

func NewRedisLockerFromURL(url string, ttl, wait time.Duration, log *zap.Logger) (*RedisLocker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	return NewRedisLocker(redis.NewClient(opts), ttl, wait, log), nil
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	key = redisKeyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true

		rctx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
		defer cancel()
		if err := releaseScript.Run(rctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn("release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

func (l *RedisLocker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLocker) Close() error {
	return l.client.Close()
}
