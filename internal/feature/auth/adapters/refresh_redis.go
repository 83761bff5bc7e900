package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/usecase"
)

// RefreshRedis implements usecase.RefreshTokenRepository using Redis.
// Rows expire with the token's own TTL; a per-user set supports bulk
// revocation on password reset.
type RefreshRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure RefreshRedis implements RefreshTokenRepository.
var _ usecase.RefreshTokenRepository = (*RefreshRedis)(nil)

// NewRefreshRedis creates a new RefreshRedis instance.
func NewRefreshRedis(client *redis.Client, prefix string) *RefreshRedis {
	return &RefreshRedis{
		client: client,
		prefix: prefix,
	}
}

// tokenKey returns the Redis key for a token row.
func (r *RefreshRedis) tokenKey(token string) string {
	return fmt.Sprintf("%s:%s", r.prefix, token)
}

// userTokensKey returns the Redis key for a user's token set.
func (r *RefreshRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a new refresh token row with a TTL matching its expiry.
func (r *RefreshRedis) Create(ctx context.Context, token *entity.RefreshToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal refresh token: %w", err)
	}

	ttl := time.Until(token.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("refresh token already expired")
	}

	if err := r.client.Set(ctx, r.tokenKey(token.Token), data, ttl).Err(); err != nil {
		return err
	}
	return r.client.SAdd(ctx, r.userTokensKey(token.UserID), token.Token).Err()
}

// Find retrieves the row for the token value and checks the owner. Expired
// rows vanish via Redis TTL, so a miss is simply not-found.
func (r *RefreshRedis) Find(ctx context.Context, userID uint, token string) (*entity.RefreshToken, error) {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrRefreshTokenNotFound
		}
		return nil, err
	}

	var row entity.RefreshToken
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal refresh token: %w", err)
	}
	if row.UserID != userID {
		return nil, usecase.ErrRefreshTokenNotFound
	}
	return &row, nil
}

// DeleteByToken removes the token row and its set membership.
func (r *RefreshRedis) DeleteByToken(ctx context.Context, token string) error {
	data, err := r.client.Get(ctx, r.tokenKey(token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}

	var row entity.RefreshToken
	if err := json.Unmarshal(data, &row); err == nil {
		_ = r.client.SRem(ctx, r.userTokensKey(row.UserID), token).Err()
	}
	return r.client.Del(ctx, r.tokenKey(token)).Err()
}

// DeleteByUserID removes all of a user's refresh tokens.
func (r *RefreshRedis) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	tokens, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	var deleted int64
	for _, token := range tokens {
		n, err := r.client.Del(ctx, r.tokenKey(token)).Result()
		if err != nil {
			return deleted, err
		}
		deleted += n
	}
	if err := r.client.Del(ctx, r.userTokensKey(userID)).Err(); err != nil {
		return deleted, err
	}
	return deleted, nil
}
