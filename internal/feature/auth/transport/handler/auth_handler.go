// Package handler provides HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"vitality_backend/internal/feature/auth/domain/entity"
	"vitality_backend/internal/feature/auth/transport/http/dto"
	"vitality_backend/internal/feature/auth/usecase"
	"vitality_backend/internal/platform/token"
)

// AuthUsecase defines the credential and session flows consumed by the handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, string, error)
	LoginWithPassword(ctx context.Context, email, password, clientIP string) (*usecase.LoginResult, error)
	RequestLoginOTP(ctx context.Context, email string) error
	LoginWithOTP(ctx context.Context, email, code, clientIP string) (*usecase.LoginResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	VerifyResetOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken, email, newPassword string) error
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uint) (*entity.User, error)
}

// AuthHandler handles HTTP requests for the auth endpoints. It binds JSON
// bodies, delegates to the usecase and maps sentinel errors to statuses
// without leaking internals.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// mapError translates a usecase sentinel into a client-safe status and message.
// Internal errors collapse to a generic 500.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, usecase.ErrEmailPreviouslyDeleted):
		return http.StatusConflict, "account was previously deleted"
	case errors.Is(err, usecase.ErrUserNotFound):
		return http.StatusNotFound, "account not found"
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, usecase.ErrInvalidResetToken),
		errors.Is(err, usecase.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, usecase.ErrOTPNotFound),
		errors.Is(err, usecase.ErrOTPMismatch):
		return http.StatusUnauthorized, "invalid otp"
	case errors.Is(err, usecase.ErrOTPExpired):
		return http.StatusUnprocessableEntity, "otp expired"
	case errors.Is(err, usecase.ErrOTPUsed):
		return http.StatusUnprocessableEntity, "otp already used"
	case errors.Is(err, usecase.ErrWeakPassword):
		return http.StatusUnprocessableEntity, usecase.ErrWeakPassword.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (h *AuthHandler) fail(c *gin.Context, op string, err error) {
	status, msg := mapError(err)
	if status == http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
	} else {
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP())
	}
	c.JSON(status, dto.ErrorRes{Error: msg})
}

// Register handles the user registration endpoint.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	user, accessToken, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		ClientIP:    c.ClientIP(),
	})
	if err != nil {
		h.fail(c, "register", err)
		return
	}

	slog.Info("user registered", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.RegisterRes{User: user, Token: accessToken})
}

// Login handles the dual-mode login endpoint. The body is resolved into an
// explicit variant once, then dispatched; a body carrying both a password and
// a code is rejected outright.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	switch req.Variant() {
	case dto.LoginPassword:
		result, err := h.auth.LoginWithPassword(c.Request.Context(), req.Email, req.Password, c.ClientIP())
		if err != nil {
			// Unknown account and wrong password share one response.
			h.fail(c, "login", err)
			return
		}
		slog.Info("user login successful", "email", result.User.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.LoginRes{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})

	case dto.LoginOTPRequest:
		if err := h.auth.RequestLoginOTP(c.Request.Context(), req.Email); err != nil {
			h.fail(c, "login otp request", err)
			return
		}
		c.JSON(http.StatusOK, dto.MessageRes{Message: "otp sent"})

	case dto.LoginOTP:
		result, err := h.auth.LoginWithOTP(c.Request.Context(), req.Email, req.OTP, c.ClientIP())
		if err != nil {
			h.fail(c, "otp login", err)
			return
		}
		slog.Info("user otp login successful", "email", result.User.Email, "remote_addr", c.ClientIP())
		c.JSON(http.StatusOK, dto.LoginRes{
			User:         result.User,
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
		})

	default:
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
	}
}

// ForgotPassword handles reset-code issuance.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	devOTP, err := h.auth.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		h.fail(c, "forgot password", err)
		return
	}

	c.JSON(http.StatusOK, dto.ForgotPasswordRes{
		Email:   req.Email,
		Message: "otp sent",
		DevOTP:  devOTP,
	})
}

// VerifyOTP exchanges a reset code for a short-lived reset token.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req dto.VerifyOTPReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	resetToken, err := h.auth.VerifyResetOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		h.fail(c, "verify otp", err)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenRes{AccessToken: resetToken})
}

// ResetPassword completes a password reset with a verified reset token.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.AccessToken, req.Email, req.NewPassword); err != nil {
		h.fail(c, "reset password", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "password reset successful"})
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	accessToken, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.fail(c, "refresh", err)
		return
	}

	c.JSON(http.StatusOK, dto.AccessTokenRes{AccessToken: accessToken})
}

// Logout discards a refresh token. Unknown tokens still return 200.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorRes{Error: "invalid request"})
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.fail(c, "logout", err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageRes{Message: "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := c.Get(token.ContextUserID)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorRes{Error: "unauthorized"})
		return
	}

	user, err := h.auth.Profile(c.Request.Context(), userID.(uint))
	if err != nil {
		h.fail(c, "profile", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
