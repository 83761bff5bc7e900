package usecase

import (
	"context"

	"vitality_backend/internal/feature/auth/domain/entity"
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrEmailTaken when an account
	// with the same email already exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves an active (non-deleted) user by email.
	// It returns ErrUserNotFound when absent or soft-deleted.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByEmailIncludingDeleted retrieves a user by email regardless of the
	// soft-delete flag. Used by registration to reject previously deleted
	// emails with a distinct error.
	FindByEmailIncludingDeleted(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves an active user by ID.
	// It returns ErrUserNotFound when absent or soft-deleted.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword replaces the stored password hash for a user.
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// OTPRepository abstracts the persistence layer for one-time codes.
type OTPRepository interface {
	// Replace removes any existing record for the record's (user, purpose)
	// pair and inserts the new one, so at most one active code exists per pair.
	Replace(ctx context.Context, record *entity.OTPRecord) error

	// Find retrieves the record for a (user, purpose) pair.
	// It returns ErrOTPNotFound when absent.
	Find(ctx context.Context, userID uint, purpose entity.OTPPurpose) (*entity.OTPRecord, error)

	// Consume marks the record as used. The check-and-set is a single guarded
	// statement so two concurrent verifications cannot both succeed; it
	// returns false when the record was already consumed.
	Consume(ctx context.Context, id uint) (bool, error)

	// Delete removes the record.
	Delete(ctx context.Context, id uint) error
}

// RefreshTokenRepository abstracts the persistence layer for refresh tokens.
type RefreshTokenRepository interface {
	// Create persists a new refresh token row.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// Find retrieves the row matching (userID, token) exactly.
	// It returns ErrRefreshTokenNotFound when absent.
	Find(ctx context.Context, userID uint, token string) (*entity.RefreshToken, error)

	// DeleteByToken removes the row holding the token value, if any.
	DeleteByToken(ctx context.Context, token string) error

	// DeleteByUserID removes all of a user's refresh tokens and returns the
	// number removed.
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
}
