package utils

import (
	"context"
	"log"
	"time"

	"termcompass/config"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

var (
	// SessionCacheClient backs the redis session store.
	SessionCacheClient *redis.Client
	// QueueClient is the redis connection the review queue runs on; it is only used for health checks.
	QueueClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// GetSessionCacheClient returns the redis client for interaction sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		SessionCacheClient = newRedisClient(config.AppConfig.RedisSessionDB, "Sessions")
	}
	return SessionCacheClient
}

// GetQueueClient returns the redis client on the review queue database.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		QueueClient = newRedisClient(config.AppConfig.RedisQueueDB, "Queue")
	}
	return QueueClient
}

// QueueRedisOpt is the asynq connection for the review queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
