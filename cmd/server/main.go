package main

import (
	"log"

	"vitality_backend/internal/app/router"
	activityadapters "vitality_backend/internal/feature/activity/adapters"
	activityusecase "vitality_backend/internal/feature/activity/usecase"
	authadapters "vitality_backend/internal/feature/auth/adapters"
	authhandler "vitality_backend/internal/feature/auth/transport/handler"
	authusecase "vitality_backend/internal/feature/auth/usecase"
	"vitality_backend/internal/platform/config"
	infradb "vitality_backend/internal/platform/db"
	"vitality_backend/internal/platform/geoip"
	platformhttp "vitality_backend/internal/platform/http"
	"vitality_backend/internal/platform/mail"
	infraredis "vitality_backend/internal/platform/redis"
	"vitality_backend/internal/platform/token"
	"vitality_backend/internal/shared/ratelimiter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	// db
	db := infradb.Open(cfg.Database)

	// Repositories
	userRepo := authadapters.NewUserMySQL(db)
	otpRepo := authadapters.NewOTPMySQL(db)
	activityRepo := activityadapters.NewActivityMySQL(db)

	// Refresh tokens live in Redis when available, MySQL otherwise.
	var refreshRepo authusecase.RefreshTokenRepository = authadapters.NewRefreshMySQL(db)
	if cfg.Redis.Enabled() {
		if rdb, err := infraredis.NewClient(cfg.Redis.Addr(), cfg.Redis.Password); err != nil {
			log.Println("[WARN] Redis unavailable. Falling back to MySQL refresh tokens.")
		} else {
			refreshRepo = authadapters.NewRefreshRedis(rdb, "refresh")
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Collaborators
	issuer := token.NewIssuer(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL, cfg.JWT.ResetTTL)
	mailer := mail.NewSMTPSender(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	geoClient := geoip.NewClient(
		geoip.Config{BaseURL: cfg.GeoIP.BaseURL},
		platformhttp.NewHTTPClient(cfg.GeoIP.Timeout),
	)

	// Audit trail runs detached from the request path.
	emitter := activityusecase.NewEmitter(activityRepo, geoClient, cfg.Audit.BufferSize)
	defer emitter.Close()

	// Usecase
	otpManager := authusecase.NewOTPManager(otpRepo, cfg.OTP.Window)
	authUC := authusecase.NewAuthUsecase(
		userRepo, otpRepo, refreshRepo, otpManager,
		issuer, mailer, emitter,
		cfg.JWT.RefreshTTL,
		!cfg.IsProduction(),
	)

	// Handler and routes
	authH := authhandler.NewAuthHandler(authUC)
	limiter := ratelimiter.NewFixedWindow(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	r := router.NewRouter(authH, limiter, issuer)

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
