package entity

import "time"

// OTPPurpose identifies the action a one-time code authorizes.
// Codes never cross purposes: a reset code cannot satisfy a login check.
type OTPPurpose string

const (
	// OTPPurposeReset authorizes a password reset.
	OTPPurposeReset OTPPurpose = "password_reset"

	// OTPPurposeLogin authorizes a one-time-code login.
	OTPPurposeLogin OTPPurpose = "login"
)

// OTPRecord is a stored one-time code for a (user, purpose) pair.
// Only the bcrypt hash of the code is persisted.
type OTPRecord struct {
	ID        uint       // Row identifier
	UserID    uint       // Owning user
	Purpose   OTPPurpose // Action the code authorizes
	CodeHash  string     // bcrypt hash of the 6-digit code
	ExpiresAt time.Time  // Hard expiry; the code is unusable past this point
	UsedAt    *time.Time // Consumption time (nil while unused)
	CreatedAt time.Time  // Issue time
}

// IsExpired returns true if the code has passed its expiry.
func (o *OTPRecord) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// IsUsed returns true if the code has already been consumed.
func (o *OTPRecord) IsUsed() bool {
	return o.UsedAt != nil
}
