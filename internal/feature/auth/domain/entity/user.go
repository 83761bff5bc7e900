// Package entity defines the domain entities for the auth feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered account.
// It contains authentication credentials and profile metadata.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Email is the user's email address used for authentication.
	// It is stored lower-cased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// FullName is the user's display name.
	FullName string `gorm:"size:255;not null" json:"full_name"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored.
	Password string `gorm:"size:255;not null" json:"-"`

	// PhoneNumber is an optional contact number.
	PhoneNumber string `gorm:"size:32" json:"phone_number,omitempty"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks the account as soft-deleted. Deletion itself is owned by
	// a separate subsystem; here a deleted account is absent for login and
	// blocked for re-registration.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsDeleted returns true if the account has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt.Valid
}
