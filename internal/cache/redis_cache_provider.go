package cache

import (
	"certportal/internal/config"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "certportal:cache:"

type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache connects to the cache database configured in cfg.Redis and verifies the
// connection.
func NewRedisCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*RedisCache, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis configuration is required for the %s cache", cfg.Cache.Type)
	}

	client := NewRedisClient(logger, cfg.Redis, cfg.Redis.CacheIndex)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return NewRedisCacheWithClient(client, logger), nil
}

func NewRedisCacheWithClient(client *redis.Client, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, logger: logger}
}

func (r *RedisCache) key(name string) string {
	return keyPrefix + name
}

func (r *RedisCache) Client() *redis.Client {
	return r.client
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Error("error executing redis GET", "key", key, "error", err)
		}
		return nil, false
	}
	return data, true
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, r.key(key), value, ttl).Err(); err != nil {
		r.logger.Error("error executing redis SET", "key", key, "error", err)
	}
}

func (r *RedisCache) Delete(ctx context.Context, key string) {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		r.logger.Error("error executing redis DEL", "key", key, "error", err)
	}
}

// Size counts the keys under the cache prefix using SCAN.
func (r *RedisCache) Size(ctx context.Context) int {
	count := 0
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		r.logger.Error("error executing redis SCAN", "error", err)
		return 0
	}
	return count
}
