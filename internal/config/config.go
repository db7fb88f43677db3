// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Port         string        `env:"PORT,default=8080" validate:"required,numeric"`
	LogLevel     string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	DatabasePath string        `env:"DATABASE_PATH,default=portfolio.db" validate:"required"`
	ContentPath  string        `env:"CONTENT_PATH"`
	SessionIdle  time.Duration `env:"SESSION_IDLE,default=30m" validate:"gt=0"`

	// Contact form delivery
	SMTPHost string `env:"SMTP_HOST,default=smtp.gmail.com" validate:"required"`
	SMTPPort string `env:"SMTP_PORT,default=587" validate:"required,numeric"`
	SMTPUser string `env:"SMTP_USER"`
	SMTPPass string `env:"SMTP_PASS"`
	ToEmail  string `env:"TO_EMAIL,default=khalafelwadya@example.com" validate:"required,email"`

	AdminUsername string `env:"ADMIN_USERNAME,default=admin" validate:"required"`
	AdminPassword string `env:"ADMIN_PASSWORD,default=admin123" validate:"required"`
}

var validate = validator.New()

// Load decodes the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := validate.Struct(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SMTPConfigured reports whether contact messages can be delivered.
func (c Config) SMTPConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPass != ""
}

// DefaultAdmin reports whether the built-in admin credentials are in use.
func (c Config) DefaultAdmin() bool {
	return c.AdminUsername == "admin" || c.AdminPassword == "admin123"
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
