package infrastructure

import (
	"context"
	"fmt"

	"users-api/internal/config"
	redisclient "users-api/pkg/redis"

	"go.uber.org/zap"
)

// NewRedisClient connects to the Redis instance backing the rate limiter.
func NewRedisClient(ctx context.Context, cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	rdb, err := redisclient.NewClient(ctx, redisclient.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}
