package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/lodging-service/internal/config"
)

// Redis holds the client backing the hotel catalogue cache.
type Redis struct {
	Client      *redis.Client
	pingTimeout time.Duration
}

// NewRedis builds the client. An unreachable server is logged, not fatal:
// the catalogue falls back to Postgres and readiness reports the outage.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	timeout := cfg.DialTimeout()
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
		ReadTimeout: timeout,
	})
	r := &Redis{Client: client, pingTimeout: timeout}

	if err := r.Ping(context.Background()); err != nil {
		logger.Warn("redis unreachable; hotel cache degraded",
			zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}
	return r
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies connectivity within the dial timeout.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	if r.pingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.pingTimeout)
		defer cancel()
	}
	return r.Client.Ping(ctx).Err()
}
