package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-authgate/tokenguard/internal/config"

	"github.com/redis/go-redis/v9"
)

const redisConnTimeout = 5 * time.Second

// needsRedisClient reports whether any component runs on the go-redis client.
// Rueidis reference stores open their own connection.
func needsRedisClient(cfg *config.Config) bool {
	if cfg.ReferenceTokenStore == config.ReferenceStoreRedis {
		return true
	}
	return cfg.RateLimitEnabled && cfg.RateLimitStore == config.RateLimitStoreRedis
}

// initializeRedisClient initializes the go-redis client shared by the redis
// reference token store and the rate limiter. Returns nil if neither uses it.
// Note: rate limiting must use go-redis because ulule/limiter depends on go-redis types.
func initializeRedisClient(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*redis.Client, error) {
	if !needsRedisClient(cfg) {
		return nil, nil //nolint:nilnil // redis client not needed in this configuration
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// Test connection with timeout
	ctx, cancel := context.WithTimeout(ctx, redisConnTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	logger.Info("Redis client initialized", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return client, nil
}
