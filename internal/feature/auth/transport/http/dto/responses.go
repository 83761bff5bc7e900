package dto

import "vitality_backend/internal/feature/auth/domain/entity"

// ErrorRes is the uniform error envelope.
type ErrorRes struct {
	Error string `json:"error"`
}

// MessageRes is the uniform success envelope for bodiless operations.
type MessageRes struct {
	Message string `json:"message"`
}

// RegisterRes is returned on successful registration.
// Registration issues an access token only.
type RegisterRes struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

// LoginRes is returned by the credential login branches.
type LoginRes struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// ForgotPasswordRes is returned by /forgot-password. DevOTP is populated only
// outside production.
type ForgotPasswordRes struct {
	Email   string `json:"email"`
	Message string `json:"message"`
	DevOTP  string `json:"dev_otp,omitempty"`
}

// AccessTokenRes carries a single issued token (/verify-otp, /refresh-token).
type AccessTokenRes struct {
	AccessToken string `json:"access_token"`
}
