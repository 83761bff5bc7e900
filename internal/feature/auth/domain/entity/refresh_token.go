package entity

import "time"

// RefreshToken is a persisted long-lived credential for one device session.
// A user may hold several concurrent tokens (multi-device); a refresh call
// must match (UserID, Token) exactly or fail closed.
type RefreshToken struct {
	ID        string    // Row identifier (UUID string)
	UserID    uint      // Owning user
	Token     string    // Signed token value as handed to the client
	CreatedAt time.Time // Issue time
	ExpiresAt time.Time // Matches the token's own expiry claim
}

// IsExpired returns true if the token has passed its expiry.
func (r *RefreshToken) IsExpired() bool {
	return time.Now().After(r.ExpiresAt)
}
