package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pta-server/shared/models"
)

// Compile-time check
var _ TokenRepository = (*redisTokenRepository)(nil)

// redisTokenRepository mirrors activity tokens in Redis so that token checks
// avoid a round trip to Postgres. The TTL matches the token validity window,
// a miss falls back to the user row.
type redisTokenRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisTokenRepository(client *redis.Client, logger *zap.Logger) TokenRepository {
	return &redisTokenRepository{
		client: client,
		logger: logger.Named("RedisTokenRepo"),
	}
}

func tokenKey(userID uuid.UUID) string {
	return fmt.Sprintf("activity_token:%s", userID)
}

func (r *redisTokenRepository) Save(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	key := tokenKey(userID)
	r.logger.Debug("Saving activity token",
		zap.String("userID", userID.String()), zap.Duration("ttl", ttl))

	if err := r.client.Set(ctx, key, token, ttl).Err(); err != nil {
		r.logger.Error("Failed to save activity token in redis",
			zap.String("userID", userID.String()), zap.Error(err))
		return fmt.Errorf("failed to save activity token: %w", err)
	}
	return nil
}

func (r *redisTokenRepository) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := r.client.Get(ctx, tokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", models.ErrNotFound
		}
		r.logger.Error("Failed to get activity token from redis",
			zap.String("userID", userID.String()), zap.Error(err))
		return "", fmt.Errorf("failed to get activity token: %w", err)
	}
	return token, nil
}

func (r *redisTokenRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := r.client.Del(ctx, tokenKey(userID)).Err(); err != nil {
		r.logger.Error("Failed to delete activity token from redis",
			zap.String("userID", userID.String()), zap.Error(err))
		return fmt.Errorf("failed to delete activity token: %w", err)
	}
	return nil
}
