package config

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// unsetEnv clears keys for the duration of the test; an empty value would
// suppress the defaults.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)
	unsetEnv(t, "PORT", "LOG_LEVEL", "DATABASE_PATH", "SESSION_IDLE", "SMTP_HOST", "SMTP_PORT",
		"SMTP_USER", "SMTP_PASS", "TO_EMAIL", "ADMIN_USERNAME", "ADMIN_PASSWORD")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("8080", cfg.Port)
	req.Equal("portfolio.db", cfg.DatabasePath)
	req.Equal(30*time.Minute, cfg.SessionIdle)
	req.Equal("smtp.gmail.com", cfg.SMTPHost)
	req.Equal(slog.LevelInfo, cfg.SlogLevel())
	req.False(cfg.SMTPConfigured())
	req.True(cfg.DefaultAdmin())
}

func TestLoad_Overrides(t *testing.T) {
	req := require.New(t)
	unsetEnv(t, "DATABASE_PATH", "SMTP_HOST", "SMTP_PORT", "TO_EMAIL")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SESSION_IDLE", "5m")
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("ADMIN_USERNAME", "root")
	t.Setenv("ADMIN_PASSWORD", "hunter22")

	cfg, err := Load()

	req.NoError(err)
	req.Equal("9090", cfg.Port)
	req.Equal(slog.LevelDebug, cfg.SlogLevel())
	req.Equal(5*time.Minute, cfg.SessionIdle)
	req.True(cfg.SMTPConfigured())
	req.False(cfg.DefaultAdmin())
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	req := require.New(t)
	unsetEnv(t, "LOG_LEVEL", "DATABASE_PATH", "SESSION_IDLE", "SMTP_HOST", "SMTP_PORT", "TO_EMAIL",
		"ADMIN_USERNAME", "ADMIN_PASSWORD")
	t.Setenv("PORT", "http")

	_, err := Load()

	req.ErrorContains(err, "invalid config")
}
