package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultLockTTL bounds how long a crashed replica can hold a session.
	DefaultLockTTL    = 10 * time.Second
	lockRetryInterval = 25 * time.Millisecond
)

// Deletes the lock only while it still carries the caller's token.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLocker serialises session events across every replica sharing the redis session store.
// Waiters in this process queue on a KeyedMutex first so only one of them polls redis.
type RedisLocker struct {
	client *redis.Client
	local  *KeyedMutex
	ttl    time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RedisLocker{client: client, local: NewKeyedMutex(), ttl: ttl}
}

func lockKey(key string) string {
	return "lock:session:" + key
}

// Lock takes the redis lock for key with SET NX, retrying until it is free or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal, _ := l.local.Lock(ctx, key)

	rkey := lockKey(key)
	token := uuid.New().String()
	ticker := time.NewTicker(lockRetryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, rkey, token, l.ttl).Result()
		if err != nil {
			unlockLocal()
			return nil, fmt.Errorf("failed to take session lock: %w", err)
		}
		if ok {
			return func() {
				rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := releaseLockScript.Run(rctx, l.client, []string{rkey}, token).Err(); err != nil {
					GetLogger().Warn("Failed to release session lock", zap.String("key", rkey), zap.Error(err))
				}
				unlockLocal()
			}, nil
		}

		select {
		case <-ctx.Done():
			unlockLocal()
			return nil, fmt.Errorf("gave up waiting for session lock: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
