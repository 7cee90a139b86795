package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient реализует service.RateLimiter.
type RedisClient struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisClient(addr, password string, db int, log *zap.Logger) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info("Redis подключен", zap.String("addr", addr))

	return &RedisClient{
		client: rdb,
		log:    log,
	}, nil
}

// NewFromClient оборачивает уже созданный клиент (тесты, общий пул).
func NewFromClient(rdb *redis.Client, log *zap.Logger) *RedisClient {
	return &RedisClient{client: rdb, log: log}
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) SetRateLimit(ctx context.Context, key string, ttl time.Duration) error {
	return r.client.Set(ctx, rateLimitKey(key), "1", ttl).Err()
}

func (r *RedisClient) CheckRateLimit(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, rateLimitKey(key)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func rateLimitKey(key string) string { return fmt.Sprintf("ratelimit:%s", key) }
