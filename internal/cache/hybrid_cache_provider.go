package cache

import (
	"certportal/internal/config"
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewHybridCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*HybridCache, error) {
	redisCache, err := NewRedisCache(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &HybridCache{
		mem:      NewMemCache(),
		redis:    redisCache,
		localTTL: cfg.Cache.TTL,
		logger:   logger,
	}, nil
}

// HybridCache keeps a process-local copy in front of redis so that replicas share the
// catalogue without a network round trip on every read.
type HybridCache struct {
	mem      *MemCache
	redis    *RedisCache
	localTTL time.Duration
	logger   *slog.Logger
}

// Get reads the memory cache and falls back to redis, refilling memory on a redis hit.
func (h *HybridCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if data, ok := h.mem.Get(ctx, key); ok {
		return data, true
	}

	data, ok := h.redis.Get(ctx, key)
	if !ok {
		return nil, false
	}

	h.mem.Set(ctx, key, data, h.localTTL)
	return data, true
}

func (h *HybridCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	h.redis.Set(ctx, key, value, ttl)
	h.mem.Set(ctx, key, value, min(ttl, h.localTTL))
}

func (h *HybridCache) Delete(ctx context.Context, key string) {
	h.redis.Delete(ctx, key)
	h.mem.Delete(ctx, key)
}

func (h *HybridCache) Size(ctx context.Context) int {
	return h.redis.Size(ctx)
}

func (h *HybridCache) Client() *redis.Client {
	return h.redis.Client()
}

func (h *HybridCache) Close() error {
	return h.redis.Close()
}
