package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	activityentity "vitality_backend/internal/feature/activity/domain/entity"
	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/platform/password"
)

// TokenIssuer abstracts signed bearer token creation and verification.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/token).
type TokenIssuer interface {
	// IssueAccess creates a short-lived access token.
	IssueAccess(userID uint, email string) (string, error)
	// IssueRefresh creates a refresh token.
	IssueRefresh(userID uint, email string) (string, error)
	// IssueReset creates a very-short-lived reset token bound to the email.
	IssueReset(userID uint, email string) (string, error)
	// VerifyRefresh verifies a refresh token and returns the embedded identity.
	VerifyRefresh(raw string) (uint, string, error)
	// VerifyReset verifies a reset token and returns the embedded identity.
	VerifyReset(raw string) (uint, string, error)
}

// MailSender abstracts out-of-band delivery of one-time codes.
type MailSender interface {
	SendOTP(to, code string) error
}

// AuditEmitter abstracts the fire-and-forget activity trail. Implementations
// must never block or fail the caller.
type AuditEmitter interface {
	Emit(eventType, clientIP, title string, metadata map[string]string)
}

// LoginResult carries the outcome of a successful credential login.
type LoginResult struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FullName    string
	Email       string
	Password    string
	PhoneNumber string
	ClientIP    string
}

// AuthUsecase sequences the credential and session flows: registration,
// dual-mode login, forgot-password OTP issuance/verification, password reset
// and refresh. All collaborator failures are mapped to the package's sentinel
// errors before they reach the transport layer.
type AuthUsecase struct {
	users      UserRepository
	otps       OTPRepository
	refreshes  RefreshTokenRepository
	otpManager *OTPManager
	tokens     TokenIssuer
	mail       MailSender
	audit      AuditEmitter

	refreshTTL time.Duration

	// exposeOTP echoes the plaintext reset code in the forgot-password result.
	// Development only; the out-of-band email is the production channel.
	exposeOTP bool
}

// NewAuthUsecase creates an AuthUsecase with its collaborators.
func NewAuthUsecase(
	users UserRepository,
	otps OTPRepository,
	refreshes RefreshTokenRepository,
	otpManager *OTPManager,
	tokens TokenIssuer,
	mail MailSender,
	audit AuditEmitter,
	refreshTTL time.Duration,
	exposeOTP bool,
) *AuthUsecase {
	return &AuthUsecase{
		users:      users,
		otps:       otps,
		refreshes:  refreshes,
		otpManager: otpManager,
		tokens:     tokens,
		mail:       mail,
		audit:      audit,
		refreshTTL: refreshTTL,
		exposeOTP:  exposeOTP,
	}
}

// normalizeEmail lower-cases and trims an address so lookups and the unique
// index agree on case.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new account and returns it with an access token.
// Registration never issues a refresh token. An email held by an active
// account fails with ErrEmailTaken; one held by a soft-deleted account fails
// with the distinct ErrEmailPreviouslyDeleted instead of silently succeeding.
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, string, error) {
	email := normalizeEmail(in.Email)

	existing, err := u.users.FindByEmailIncludingDeleted(ctx, email)
	if err == nil {
		if existing.IsDeleted() {
			return nil, "", ErrEmailPreviouslyDeleted
		}
		return nil, "", ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	user := &entity.User{
		Email:       email,
		FullName:    strings.TrimSpace(in.FullName),
		Password:    hash,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	access, err := u.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	u.audit.Emit(activityentity.EventRegister, in.ClientIP, "account registered", map[string]string{"email": user.Email})
	return user, access, nil
}

// LoginWithPassword authenticates by email and password. Unknown accounts and
// wrong passwords collapse into the same ErrInvalidCredentials, and a dummy
// bcrypt comparison runs when the account is missing so the two cases are
// indistinguishable in timing.
func (u *AuthUsecase) LoginWithPassword(ctx context.Context, email, plaintext, clientIP string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	hash := password.DummyHash
	if err == nil {
		hash = user.Password
	}
	match := password.Verify(plaintext, hash)

	if err != nil || !match {
		return nil, ErrInvalidCredentials
	}

	return u.openSession(ctx, user, clientIP)
}

// RequestLoginOTP generates a login code for the account and delivers it by
// email. The response carries no code.
func (u *AuthUsecase) RequestLoginOTP(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	code, err := u.otpManager.Request(ctx, user.ID, entity.OTPPurposeLogin)
	if err != nil {
		return err
	}
	if err := u.mail.SendOTP(user.Email, code); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}

// LoginWithOTP authenticates by email and a previously requested login code.
func (u *AuthUsecase) LoginWithOTP(ctx context.Context, email, code, clientIP string) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := u.otpManager.Verify(ctx, user.ID, entity.OTPPurposeLogin, code); err != nil {
		return nil, err
	}

	return u.openSession(ctx, user, clientIP)
}

// openSession issues the access and refresh token pair, persists the refresh
// token and records the login in the audit trail.
func (u *AuthUsecase) openSession(ctx context.Context, user *entity.User, clientIP string) (*LoginResult, error) {
	access, err := u.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	refresh, err := u.tokens.IssueRefresh(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	row := &entity.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(u.refreshTTL),
	}
	if err := u.refreshes.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	u.audit.Emit(activityentity.EventLogin, clientIP, "user logged in", map[string]string{"email": user.Email})

	return &LoginResult{User: user, AccessToken: access, RefreshToken: refresh}, nil
}

// ForgotPassword issues a reset code for the account and delivers it by
// email. Any prior reset code for the user is superseded. The returned string
// is empty unless the development OTP echo is enabled.
func (u *AuthUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}

	code, err := u.otpManager.Request(ctx, user.ID, entity.OTPPurposeReset)
	if err != nil {
		return "", err
	}

	if err := u.mail.SendOTP(user.Email, code); err != nil {
		if !u.exposeOTP {
			return "", fmt.Errorf("failed to send otp email: %w", err)
		}
		// Development convenience: delivery failures fall back to the echo.
		slog.Warn("otp email delivery failed", "email", user.Email, "error", err)
	}

	if u.exposeOTP {
		return code, nil
	}
	return "", nil
}

// VerifyResetOTP checks a reset code and exchanges it for a short-lived reset
// token bound to the account's email. The code is consumed; only the reset
// token is accepted by ResetPassword.
func (u *AuthUsecase) VerifyResetOTP(ctx context.Context, email, code string) (string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if err := u.otpManager.Verify(ctx, user.ID, entity.OTPPurposeReset, code); err != nil {
		return "", err
	}

	reset, err := u.tokens.IssueReset(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return reset, nil
}

// ResetPassword completes a reset: it verifies the reset token and its email
// binding, enforces the strength policy before touching the store, requires a
// reset-purpose OTP record as evidence the reset was requested, replaces the
// password hash, deletes the record, and revokes the user's refresh tokens so
// stolen sessions do not survive the reset.
func (u *AuthUsecase) ResetPassword(ctx context.Context, resetToken, email, newPassword string) error {
	_, tokenEmail, err := u.tokens.VerifyReset(resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}
	normalized := normalizeEmail(email)
	if tokenEmail != normalized {
		return ErrInvalidResetToken
	}

	if err := validatePassword(newPassword); err != nil {
		return err
	}

	user, err := u.users.FindByEmail(ctx, normalized)
	if err != nil {
		return err
	}

	record, err := u.otps.Find(ctx, user.ID, entity.OTPPurposeReset)
	if err != nil {
		// No record means no reset was requested; a replayed reset token
		// lands here after the first reset deletes the row.
		if errors.Is(err, ErrOTPNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if record.IsExpired() {
		_ = u.otps.Delete(ctx, record.ID)
		return ErrOTPExpired
	}
	// A consumed record is expected: VerifyResetOTP marks it used. Its
	// existence is the evidence; it is cleaned up below either way.

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := u.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return err
	}
	if err := u.otps.Delete(ctx, record.ID); err != nil {
		slog.Warn("failed to delete reset otp", "user_id", user.ID, "error", err)
	}
	if _, err := u.refreshes.DeleteByUserID(ctx, user.ID); err != nil {
		slog.Warn("failed to revoke refresh tokens", "user_id", user.ID, "error", err)
	}

	u.audit.Emit(activityentity.EventPasswordReset, "", "password reset completed", map[string]string{"email": user.Email})
	return nil
}

// Refresh exchanges a stored refresh token for a new access token. The token
// must verify and match a persisted (user, token) row exactly; anything else
// fails closed with ErrInvalidRefreshToken. Refresh tokens are not rotated on
// use, so concurrent devices keep their sessions.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, _, err := u.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	row, err := u.refreshes.Find(ctx, userID, refreshToken)
	if err != nil {
		if errors.Is(err, ErrRefreshTokenNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}
	if row.IsExpired() {
		_ = u.refreshes.DeleteByToken(ctx, refreshToken)
		return "", ErrInvalidRefreshToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", err
	}

	access, err := u.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return access, nil
}

// Logout discards the submitted refresh token. Unknown tokens are ignored so
// the call is idempotent.
func (u *AuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	return u.refreshes.DeleteByToken(ctx, refreshToken)
}

// Profile returns the account for an authenticated user ID.
func (u *AuthUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}
