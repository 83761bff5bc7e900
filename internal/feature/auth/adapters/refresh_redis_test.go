package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/usecase"
)

func newTestRedisRepo(t *testing.T) (*RefreshRedis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRefreshRedis(client, "refresh"), mr
}

func redisRow(userID uint, token string, ttl time.Duration) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestRefreshRedis_CreateAndFind(t *testing.T) {
	ctx := context.Background()

	t.Run("success: roundtrip", func(t *testing.T) {
		repo, _ := newTestRedisRepo(t)

		require.NoError(t, repo.Create(ctx, redisRow(1, "token-a", time.Hour)))

		found, err := repo.Find(ctx, 1, "token-a")
		require.NoError(t, err)
		assert.EqualValues(t, 1, found.UserID)
		assert.Equal(t, "token-a", found.Token)
	})

	t.Run("failure: token owned by another user", func(t *testing.T) {
		repo, _ := newTestRedisRepo(t)

		require.NoError(t, repo.Create(ctx, redisRow(1, "token-a", time.Hour)))

		_, err := repo.Find(ctx, 2, "token-a")
		assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
	})

	t.Run("failure: already expired rows are refused", func(t *testing.T) {
		repo, _ := newTestRedisRepo(t)

		err := repo.Create(ctx, redisRow(1, "token-a", -time.Minute))
		assert.Error(t, err)
	})

	t.Run("failure: row vanishes when its TTL elapses", func(t *testing.T) {
		repo, mr := newTestRedisRepo(t)

		require.NoError(t, repo.Create(ctx, redisRow(1, "token-a", time.Hour)))
		mr.FastForward(2 * time.Hour)

		_, err := repo.Find(ctx, 1, "token-a")
		assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
	})
}

func TestRefreshRedis_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("delete by token is idempotent", func(t *testing.T) {
		repo, _ := newTestRedisRepo(t)

		require.NoError(t, repo.Create(ctx, redisRow(1, "token-a", time.Hour)))
		require.NoError(t, repo.DeleteByToken(ctx, "token-a"))

		_, err := repo.Find(ctx, 1, "token-a")
		assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
		assert.NoError(t, repo.DeleteByToken(ctx, "token-a"))
	})

	t.Run("delete by user removes all of the user's rows", func(t *testing.T) {
		repo, _ := newTestRedisRepo(t)

		require.NoError(t, repo.Create(ctx, redisRow(1, "token-a", time.Hour)))
		require.NoError(t, repo.Create(ctx, redisRow(1, "token-b", time.Hour)))
		require.NoError(t, repo.Create(ctx, redisRow(2, "token-c", time.Hour)))

		n, err := repo.DeleteByUserID(ctx, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)

		_, err = repo.Find(ctx, 1, "token-a")
		assert.ErrorIs(t, err, usecase.ErrRefreshTokenNotFound)
		_, err = repo.Find(ctx, 2, "token-c")
		assert.NoError(t, err, "other users' rows must survive")
	})
}
