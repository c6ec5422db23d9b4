package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/docforge/internal/domain/document"
	"github.com/orris-inc/docforge/internal/shared/constants"
	"github.com/orris-inc/docforge/internal/shared/logger"
)

// DefaultSessionTTL applies when no session TTL is configured.
const DefaultSessionTTL = time.Hour

// RedisSessionStore keeps export sessions in Redis as JSON documents. Every
// save refreshes the TTL, so a session expires after ttl of inactivity.
type RedisSessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisSessionStore creates a store namespaced under
// constants.RedisPrefixExportSession.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisSessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisSessionStore{
		client: client,
		prefix: constants.RedisPrefixExportSession,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *document.ExportSession) error {
	if session == nil || session.ID() == "" {
		return errors.New("session id cannot be empty")
	}

	data, err := encodeSession(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.buildKey(session.ID()), data, s.ttl).Err(); err != nil {
		s.logger.Errorw("failed to store export session", "session_id", session.ID(), "error", err)
		return fmt.Errorf("failed to store export session in redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*document.ExportSession, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.client.Get(ctx, s.buildKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve export session from redis: %w", err)
	}

	return decodeSession(data)
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.buildKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete export session from redis: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) buildKey(id string) string {
	return s.prefix + id
}
