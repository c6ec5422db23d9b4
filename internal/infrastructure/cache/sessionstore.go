package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/config"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

const redisPingTimeout = 5 * time.Second

// NewRedisClient connects to Redis and verifies the connection with PING.
func NewRedisClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.GetAddr(), err)
	}
	return client, nil
}

// NewSessionStore returns the store selected by export.session_store. The
// redis store needs a connected client.
func NewSessionStore(cfg *config.ExportConfig, client *redis.Client, log logger.Interface) (document.ExportSessionStore, error) {
	switch cfg.SessionStore {
	case config.SessionStoreMemory:
		return NewMemorySessionStore(cfg.SessionTTL), nil
	case config.SessionStoreRedis, "":
		if client == nil {
			return nil, fmt.Errorf("redis session store requires a redis client")
		}
		return NewRedisSessionStore(client, cfg.SessionTTL, log.With("component", "session_store")), nil
	default:
		return nil, fmt.Errorf("unsupported session store: %s", cfg.SessionStore)
	}
}
