// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID,
	// or when the account has been soft-deleted.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering with an email that already
	// belongs to an active account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrEmailPreviouslyDeleted is returned when registering with an email
	// that belongs to a soft-deleted account. Distinct from ErrEmailTaken so
	// the client can explain that the account was removed, not duplicated.
	ErrEmailPreviouslyDeleted = errors.New("email belongs to a previously deleted account")

	// ErrInvalidCredentials is returned for any password-login failure.
	// It deliberately does not distinguish an unknown account from a wrong
	// password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWeakPassword is returned when a new password fails the strength policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters with a letter, a digit and a symbol")

	// ErrOTPNotFound is returned when no code exists for the (user, purpose) pair.
	ErrOTPNotFound = errors.New("otp not found")

	// ErrOTPExpired is returned when the code's window has passed.
	ErrOTPExpired = errors.New("otp expired")

	// ErrOTPUsed is returned when the code has already been consumed.
	ErrOTPUsed = errors.New("otp already used")

	// ErrOTPMismatch is returned when the candidate code does not match.
	ErrOTPMismatch = errors.New("otp does not match")

	// ErrRefreshTokenNotFound is returned by repositories when no exact
	// (user, token) row exists.
	ErrRefreshTokenNotFound = errors.New("refresh token not found")

	// ErrInvalidRefreshToken is returned for any refresh failure: bad
	// signature, expiry, or a token absent from the store.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrInvalidResetToken is returned for any reset-token failure, including
	// an email mismatch. Treated as an authentication failure, not a format error.
	ErrInvalidResetToken = errors.New("invalid reset token")
)
