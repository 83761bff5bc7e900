// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"time"

	"vitality_backend/internal/feature/auth/domain/entity"
)

// OTPModel is the GORM model for the otp_records table.
// At most one row exists per (user, purpose) pair; Replace enforces it.
type OTPModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index:idx_otp_user_purpose;not null"`
	Purpose   string    `gorm:"index:idx_otp_user_purpose;size:32;not null"`
	CodeHash  string    `gorm:"size:255;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (OTPModel) TableName() string {
	return "otp_records"
}

// ToEntity converts the GORM model to a domain entity.
func (m *OTPModel) ToEntity() *entity.OTPRecord {
	return &entity.OTPRecord{
		ID:        m.ID,
		UserID:    m.UserID,
		Purpose:   entity.OTPPurpose(m.Purpose),
		CodeHash:  m.CodeHash,
		ExpiresAt: m.ExpiresAt,
		UsedAt:    m.UsedAt,
		CreatedAt: m.CreatedAt,
	}
}

// OTPModelFromEntity converts a domain entity to a GORM model.
func OTPModelFromEntity(r *entity.OTPRecord) *OTPModel {
	return &OTPModel{
		ID:        r.ID,
		UserID:    r.UserID,
		Purpose:   string(r.Purpose),
		CodeHash:  r.CodeHash,
		ExpiresAt: r.ExpiresAt,
		UsedAt:    r.UsedAt,
		CreatedAt: r.CreatedAt,
	}
}

// RefreshTokenModel is the GORM model for the refresh_tokens table.
type RefreshTokenModel struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;size:512;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// ToEntity converts the GORM model to a domain entity.
func (m *RefreshTokenModel) ToEntity() *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        m.ID,
		UserID:    m.UserID,
		Token:     m.Token,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// RefreshTokenModelFromEntity converts a domain entity to a GORM model.
func RefreshTokenModelFromEntity(t *entity.RefreshToken) *RefreshTokenModel {
	return &RefreshTokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
