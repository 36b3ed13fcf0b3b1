package cache

import (
	"certportal/internal/config"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to a single node or through sentinel, selecting database db.
func NewRedisClient(logger *slog.Logger, cfg *config.RedisConfig, db int) *redis.Client {
	if cfg.Sentinel != nil {
		logger.Info("connecting to redis via sentinel",
			"master", cfg.Sentinel.MasterName,
			"sentinels", cfg.Sentinel.SentinelAddresses,
			"db", db)

		return redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Sentinel.MasterName,
			SentinelAddrs:    cfg.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Sentinel.SentinelPassword,
			Username:         cfg.Username,
			Password:         cfg.Password,
			DB:               db,
			MinIdleConns:     2,
		})
	}

	logger.Info("connecting to redis", "address", cfg.Address, "db", db)

	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DB:           db,
		MinIdleConns: 2,
	})
}
