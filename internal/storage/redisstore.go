package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kenziemed/medclient/internal/logging"
	"github.com/kenziemed/medclient/internal/models"
	"github.com/kenziemed/medclient/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	redisUserKey   = "medclient:session:user"
	redisUserIDKey = "medclient:session:userId"
	redisTokenKey  = "medclient:session:token"
)

// RedisStore persists the session record in Redis, for deployments
// where several client processes share one session (kiosks, terminals).
type RedisStore struct {
	client *redisclient.Client
	ttl    time.Duration
	logger *logging.SafeLogger
}

// NewRedisStore creates a Redis-backed storage. A zero TTL keeps the
// session until it is explicitly cleared.
func NewRedisStore(client *redisclient.Client, ttl time.Duration, logger *logging.SafeLogger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// Read loads the persisted session record
func (s *RedisStore) Read(ctx context.Context) (*Record, error) {
	token, err := s.client.Get(ctx, redisTokenKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to read session token: %w", err)
	}

	userData, err := s.client.Get(ctx, redisUserKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// A token without a user record is an invalid state
			return nil, models.ErrCorruptSession
		}
		return nil, fmt.Errorf("failed to read session user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		s.logger.Warn("persisted user record is not valid JSON", zap.Error(err))
		return nil, models.ErrCorruptSession
	}

	userID, err := s.client.Get(ctx, redisUserIDKey).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read session user id: %w", err)
	}

	return &Record{User: user, UserID: userID, Token: token}, nil
}

// Write persists the session record
func (s *RedisStore) Write(ctx context.Context, record *Record) error {
	userData, err := json.Marshal(record.User)
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	if err := s.client.Set(ctx, redisUserKey, string(userData), s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session user: %w", err)
	}
	if err := s.client.Set(ctx, redisUserIDKey, record.UserID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session user id: %w", err)
	}
	if err := s.client.Set(ctx, redisTokenKey, record.Token, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write session token: %w", err)
	}

	return nil
}

// Clear removes the persisted session
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisUserKey, redisUserIDKey, redisTokenKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session keys: %w", err)
	}
	return nil
}
