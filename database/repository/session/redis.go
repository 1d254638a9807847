package sessionRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSessionRepo stores sessions as JSON strings with a Redis TTL.
type RedisSessionRepo struct {
	client *redis.Client
}

func NewRedisSessionRepo(client *redis.Client) *RedisSessionRepo {
	return &RedisSessionRepo{client: client}
}

func (r *RedisSessionRepo) Save(ctx context.Context, kind, id string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s session: %w", kind, err)
	}
	if err := r.client.Set(ctx, sessionKey(kind, id), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save %s session: %w", kind, err)
	}
	return nil
}

func (r *RedisSessionRepo) Load(ctx context.Context, kind, id string, v any) error {
	data, err := r.client.Get(ctx, sessionKey(kind, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s session: %w", kind, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s session: %w", kind, err)
	}
	return nil
}

func (r *RedisSessionRepo) Delete(ctx context.Context, kind, id string) error {
	if err := r.client.Del(ctx, sessionKey(kind, id)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s session: %w", kind, err)
	}
	return nil
}
