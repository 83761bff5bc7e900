package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/usecase"
)

func newOTPRecord(userID uint, purpose entity.OTPPurpose, hash string) *entity.OTPRecord {
	return &entity.OTPRecord{
		UserID:    userID,
		Purpose:   purpose,
		CodeHash:  hash,
		ExpiresAt: time.Now().Add(5 * time.Minute),
	}
}

func TestOTPMySQL_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("success: insert backfills the id", func(t *testing.T) {
		repo := NewOTPMySQL(newTestDB(t))

		record := newOTPRecord(1, entity.OTPPurposeReset, "hash-1")
		require.NoError(t, repo.Replace(ctx, record))
		assert.NotZero(t, record.ID)
	})

	t.Run("success: supersedes the prior code for the pair", func(t *testing.T) {
		db := newTestDB(t)
		repo := NewOTPMySQL(db)

		require.NoError(t, repo.Replace(ctx, newOTPRecord(1, entity.OTPPurposeReset, "hash-1")))
		require.NoError(t, repo.Replace(ctx, newOTPRecord(1, entity.OTPPurposeReset, "hash-2")))

		var count int64
		require.NoError(t, db.Model(&OTPModel{}).Count(&count).Error)
		assert.EqualValues(t, 1, count, "the pair holds at most one row")

		found, err := repo.Find(ctx, 1, entity.OTPPurposeReset)
		require.NoError(t, err)
		assert.Equal(t, "hash-2", found.CodeHash)
	})

	t.Run("success: purposes hold separate rows", func(t *testing.T) {
		repo := NewOTPMySQL(newTestDB(t))

		require.NoError(t, repo.Replace(ctx, newOTPRecord(1, entity.OTPPurposeReset, "reset-hash")))
		require.NoError(t, repo.Replace(ctx, newOTPRecord(1, entity.OTPPurposeLogin, "login-hash")))

		reset, err := repo.Find(ctx, 1, entity.OTPPurposeReset)
		require.NoError(t, err)
		login, err := repo.Find(ctx, 1, entity.OTPPurposeLogin)
		require.NoError(t, err)
		assert.Equal(t, "reset-hash", reset.CodeHash)
		assert.Equal(t, "login-hash", login.CodeHash)
	})
}

func TestOTPMySQL_Find(t *testing.T) {
	ctx := context.Background()
	repo := NewOTPMySQL(newTestDB(t))

	_, err := repo.Find(ctx, 1, entity.OTPPurposeReset)
	assert.ErrorIs(t, err, usecase.ErrOTPNotFound)
}

func TestOTPMySQL_Consume(t *testing.T) {
	ctx := context.Background()

	t.Run("success: first consume wins, second fails", func(t *testing.T) {
		repo := NewOTPMySQL(newTestDB(t))

		record := newOTPRecord(1, entity.OTPPurposeReset, "hash")
		require.NoError(t, repo.Replace(ctx, record))

		consumed, err := repo.Consume(ctx, record.ID)
		require.NoError(t, err)
		assert.True(t, consumed)

		again, err := repo.Consume(ctx, record.ID)
		require.NoError(t, err)
		assert.False(t, again, "the used_at guard must reject a second consume")

		found, err := repo.Find(ctx, 1, entity.OTPPurposeReset)
		require.NoError(t, err)
		assert.True(t, found.IsUsed())
	})

	t.Run("failure: unknown id consumes nothing", func(t *testing.T) {
		repo := NewOTPMySQL(newTestDB(t))

		consumed, err := repo.Consume(ctx, 999)
		require.NoError(t, err)
		assert.False(t, consumed)
	})
}

func TestOTPMySQL_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewOTPMySQL(newTestDB(t))

	record := newOTPRecord(1, entity.OTPPurposeReset, "hash")
	require.NoError(t, repo.Replace(ctx, record))

	require.NoError(t, repo.Delete(ctx, record.ID))
	_, err := repo.Find(ctx, 1, entity.OTPPurposeReset)
	assert.ErrorIs(t, err, usecase.ErrOTPNotFound)

	// Deleting an absent row is not an error.
	assert.NoError(t, repo.Delete(ctx, record.ID))
}
