package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/usecase"
)

// refreshMySQL is a MySQL implementation of the RefreshTokenRepository interface.
type refreshMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure refreshMySQL implements RefreshTokenRepository.
var _ usecase.RefreshTokenRepository = (*refreshMySQL)(nil)

// NewRefreshMySQL creates a new instance of refreshMySQL.
func NewRefreshMySQL(db *gorm.DB) *refreshMySQL {
	return &refreshMySQL{db: db}
}

// Create persists a new refresh token row.
func (r *refreshMySQL) Create(ctx context.Context, token *entity.RefreshToken) error {
	return r.db.WithContext(ctx).Create(RefreshTokenModelFromEntity(token)).Error
}

// Find retrieves the row matching (userID, token) exactly; anything less
// precise would let a validly signed token of another user pass.
func (r *refreshMySQL) Find(ctx context.Context, userID uint, token string) (*entity.RefreshToken, error) {
	var model RefreshTokenModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrRefreshTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// DeleteByToken removes the row holding the token value, if any.
func (r *refreshMySQL) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&RefreshTokenModel{}, "token = ?", token).Error
}

// DeleteByUserID removes all of a user's refresh tokens.
func (r *refreshMySQL) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&RefreshTokenModel{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}
