// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the server process.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"local"`
	Addr   string `env:"APP_ADDR" envDefault:":8080"`

	JWT       JWT       `envPrefix:"JWT_"`
	Database  Database  `envPrefix:"DB_"`
	Redis     Redis     `envPrefix:"REDIS_"`
	SMTP      SMTP      `envPrefix:"SMTP_"`
	GeoIP     GeoIP     `envPrefix:"GEOIP_"`
	RateLimit RateLimit `envPrefix:"RATE_LIMIT_"`
	OTP       OTP       `envPrefix:"OTP_"`
	Audit     Audit     `envPrefix:"AUDIT_"`
}

// JWT contains token signing parameters and per-class lifetimes.
type JWT struct {
	Secret     string        `env:"SECRET"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" envDefault:"168h"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"360h"`
	ResetTTL   time.Duration `env:"RESET_TTL" envDefault:"10m"`
}

// Database contains MySQL connection parameters.
type Database struct {
	User          string `env:"USER"`
	Password      string `env:"PASSWORD"`
	Host          string `env:"HOST" envDefault:"127.0.0.1"`
	Port          string `env:"PORT" envDefault:"3306"`
	Name          string `env:"NAME"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
}

// Redis contains connection parameters for the optional Redis backend.
type Redis struct {
	Host     string `env:"HOST"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
}

// Enabled reports whether a Redis host has been configured.
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Addr returns the host:port address of the Redis server.
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// SMTP contains outbound mail delivery parameters.
type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USER"`
	Password string `env:"PASS"`
	From     string `env:"FROM"`
}

// GeoIP contains parameters for the geolocation lookup client.
type GeoIP struct {
	BaseURL string        `env:"BASE_URL" envDefault:"http://ip-api.com"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

// RateLimit contains the fixed-window policy for sensitive endpoints.
type RateLimit struct {
	MaxAttempts int           `env:"MAX_ATTEMPTS" envDefault:"5"`
	Window      time.Duration `env:"WINDOW" envDefault:"1m"`
}

// OTP contains one-time code parameters.
type OTP struct {
	Window time.Duration `env:"WINDOW" envDefault:"5m"`
}

// Audit contains parameters for the activity audit emitter.
type Audit struct {
	BufferSize int `env:"BUFFER_SIZE" envDefault:"64"`
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads configuration from the environment, after a best-effort .env load.
// It fails when required secrets are missing.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	missing := []string{}
	if cfg.JWT.Secret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.Database.User == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.Database.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return cfg, errors.New("missing env: " + strings.Join(missing, ", "))
	}

	return cfg, nil
}
