package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vitality_backend/internal/feature/auth/domain/entity"
)

// OTPManager owns the lifecycle of one-time codes: generation, hashed storage
// with expiry, verification and single-use consumption.
type OTPManager struct {
	otps   OTPRepository
	window time.Duration
	now    func() time.Time
}

// NewOTPManager creates an OTPManager with the given validity window.
func NewOTPManager(otps OTPRepository, window time.Duration) *OTPManager {
	return &OTPManager{
		otps:   otps,
		window: window,
		now:    time.Now,
	}
}

// Request generates a 6-digit code for the (user, purpose) pair, stores its
// bcrypt hash with an expiry, and returns the plaintext for out-of-band
// delivery. Any prior code for the same pair is superseded. The plaintext is
// never persisted.
func (m *OTPManager) Request(ctx context.Context, userID uint, purpose entity.OTPPurpose) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	record := &entity.OTPRecord{
		UserID:    userID,
		Purpose:   purpose,
		CodeHash:  string(hash),
		ExpiresAt: m.now().Add(m.window),
	}
	if err := m.otps.Replace(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	return code, nil
}

// Verify checks a candidate code for the (user, purpose) pair and consumes it
// on success, so a retried verification with the same code cannot pass twice.
// Failures are reported as ErrOTPNotFound, ErrOTPExpired (the record is
// purged), ErrOTPUsed or ErrOTPMismatch. Purposes never cross: a reset code
// can only satisfy a reset verification.
func (m *OTPManager) Verify(ctx context.Context, userID uint, purpose entity.OTPPurpose, candidate string) error {
	record, err := m.otps.Find(ctx, userID, purpose)
	if err != nil {
		return err
	}

	if m.now().After(record.ExpiresAt) {
		_ = m.otps.Delete(ctx, record.ID)
		return ErrOTPExpired
	}
	if record.IsUsed() {
		return ErrOTPUsed
	}
	if bcrypt.CompareHashAndPassword([]byte(record.CodeHash), []byte(candidate)) != nil {
		return ErrOTPMismatch
	}

	consumed, err := m.otps.Consume(ctx, record.ID)
	if err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	if !consumed {
		// A concurrent verification won the guarded update.
		return ErrOTPUsed
	}
	return nil
}

// generateCode returns a uniformly random 6-digit numeric code.
func generateCode() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	n := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return fmt.Sprintf("%06d", n%1000000), nil
}
