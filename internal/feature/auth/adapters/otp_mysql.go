package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/usecase"
)

// otpMySQL is a MySQL implementation of the OTPRepository interface.
type otpMySQL struct {
	db *gorm.DB
}

// Compile-time check to ensure otpMySQL implements OTPRepository.
var _ usecase.OTPRepository = (*otpMySQL)(nil)

// NewOTPMySQL creates a new instance of otpMySQL.
func NewOTPMySQL(db *gorm.DB) *otpMySQL {
	return &otpMySQL{db: db}
}

// Replace supersedes any existing record for the (user, purpose) pair in a
// single transaction, keeping at most one active code per pair.
func (r *otpMySQL) Replace(ctx context.Context, record *entity.OTPRecord) error {
	model := OTPModelFromEntity(record)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ?", model.UserID, model.Purpose).
			Delete(&OTPModel{}).Error; err != nil {
			return err
		}
		return tx.Create(model).Error
	})
	if err != nil {
		return err
	}
	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// Find retrieves the record for a (user, purpose) pair.
func (r *otpMySQL) Find(ctx context.Context, userID uint, purpose entity.OTPPurpose) (*entity.OTPRecord, error) {
	var model OTPModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, string(purpose)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOTPNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Consume marks the record as used. The used_at guard makes the check-and-set
// a single statement, so of two concurrent verifications exactly one wins.
func (r *otpMySQL) Consume(ctx context.Context, id uint) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&OTPModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", now)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes the record.
func (r *otpMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&OTPModel{}, "id = ?", id).Error
}
