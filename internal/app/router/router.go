package router

import (
	"github.com/gin-gonic/gin"

	authhandler "vitality_backend/internal/feature/auth/transport/handler"
	"vitality_backend/internal/platform/http/handler"
	"vitality_backend/internal/platform/token"
	"vitality_backend/internal/shared/ratelimiter"
)

// NewRouter wires the HTTP routes. Sensitive credential endpoints sit behind
// the fixed-window rate limiter; it rejects before any handler work happens.
func NewRouter(authHandler *authhandler.AuthHandler, limiter ratelimiter.Limiter, issuer *token.Issuer) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Credential endpoints, brute-force guarded
	limited := r.Group("/")
	limited.Use(ratelimiter.Middleware(limiter))
	{
		limited.POST("/register", authHandler.Register)
		limited.POST("/login", authHandler.Login)
		limited.POST("/forgot-password", authHandler.ForgotPassword)
		limited.POST("/verify-otp", authHandler.VerifyOTP)
	}

	// Token-bearing endpoints; the tokens themselves are the guard
	r.POST("/reset-password", authHandler.ResetPassword)
	r.POST("/refresh-token", authHandler.Refresh)
	r.POST("/logout", authHandler.Logout)

	// Routes requiring a valid access token
	auth := r.Group("/")
	auth.Use(token.AuthRequired(issuer))
	{
		auth.GET("/me", authHandler.Me)
	}

	return r
}
