// Package token issues and verifies the signed bearer tokens used by the auth
// flows. Tokens are self-contained HS256 JWTs; the issuer is stateless apart
// from the shared signing secret.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind is the class of a token. Each class carries its own lifetime and a
// token of one class never verifies as another.
type Kind string

const (
	// KindAccess is the short-lived credential for API calls.
	KindAccess Kind = "access"

	// KindRefresh is the longer-lived credential exchanged for new access tokens.
	KindRefresh Kind = "refresh"

	// KindReset is the very-short-lived credential proving OTP verification
	// during a password reset.
	KindReset Kind = "reset"
)

// ErrInvalidToken is returned for any malformed, unsigned, expired, tampered,
// or wrong-class token. Callers must treat it as an authentication failure.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload embedded in every issued token.
type Claims struct {
	Email     string `json:"email"`
	TokenType string `json:"typ"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim back into a user ID.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Issuer creates and verifies signed tokens.
type Issuer struct {
	secret []byte
	ttls   map[Kind]time.Duration
}

// NewIssuer creates an Issuer with the provided secret and per-class lifetimes.
func NewIssuer(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *Issuer {
	return &Issuer{
		secret: []byte(secret),
		ttls: map[Kind]time.Duration{
			KindAccess:  accessTTL,
			KindRefresh: refreshTTL,
			KindReset:   resetTTL,
		},
	}
}

// TTL returns the configured lifetime for a token class.
func (i *Issuer) TTL(kind Kind) time.Duration {
	return i.ttls[kind]
}

// Issue creates a signed token of the given class for the user.
func (i *Issuer) Issue(userID uint, email string, kind Kind) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:     email,
		TokenType: string(kind),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttls[kind])),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry and token class. Any failure collapses into
// ErrInvalidToken so callers cannot accidentally distinguish tampered tokens
// from expired ones in client-facing responses.
func (i *Issuer) Verify(raw string, kind Kind) (*Claims, error) {
	var claims Claims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != string(kind) {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

// IssueAccess creates a short-lived access token.
func (i *Issuer) IssueAccess(userID uint, email string) (string, error) {
	return i.Issue(userID, email, KindAccess)
}

// IssueRefresh creates a refresh token.
func (i *Issuer) IssueRefresh(userID uint, email string) (string, error) {
	return i.Issue(userID, email, KindRefresh)
}

// IssueReset creates a reset token bound to the user's email.
func (i *Issuer) IssueReset(userID uint, email string) (string, error) {
	return i.Issue(userID, email, KindReset)
}

// VerifyRefresh verifies a refresh token and returns the embedded identity.
func (i *Issuer) VerifyRefresh(raw string) (uint, string, error) {
	return i.verifyIdentity(raw, KindRefresh)
}

// VerifyReset verifies a reset token and returns the embedded identity.
func (i *Issuer) VerifyReset(raw string) (uint, string, error) {
	return i.verifyIdentity(raw, KindReset)
}

func (i *Issuer) verifyIdentity(raw string, kind Kind) (uint, string, error) {
	claims, err := i.Verify(raw, kind)
	if err != nil {
		return 0, "", err
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, "", err
	}
	return id, claims.Email, nil
}
