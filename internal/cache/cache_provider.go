package cache

import (
	"certportal/internal/config"
	"context"
	"fmt"
	"log/slog"
	"time"
)

// CacheProvider stores opaque values under string keys with a per-entry TTL.
type CacheProvider interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Size(ctx context.Context) int
}

// NewCacheProvider returns the provider selected by cfg.Cache.Type. It returns nil when
// caching is disabled.
func NewCacheProvider(ctx context.Context, cfg *config.Config, logger *slog.Logger) (CacheProvider, error) {
	switch cfg.Cache.Type {
	case config.CacheTypeNone, "":
		return nil, nil
	case config.CacheTypeRedis:
		c, err := NewRedisCache(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheTypeHybrid:
		c, err := NewHybridCache(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.CacheTypeMemory:
		return NewMemCache(), nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s", cfg.Cache.Type)
	}
}
