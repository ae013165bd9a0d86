// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the gateway's environment-driven configuration. The .env file,
// if any, is loaded by the caller before parsing.
type Config struct {
	Addr             string        `env:"ADDR" envDefault:":8080"`
	BackendBaseURL   string        `env:"BACKEND_BASE_URL" envDefault:"http://localhost:4000"`
	BackendTimeout   time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	BillingCTATarget string        `env:"BILLING_CTA_TARGET" envDefault:"/app/billing"`
	ConfirmTTL       time.Duration `env:"CONFIRM_TTL" envDefault:"5m"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// SlogLevel maps the configured level string to a slog level. Unknown
// values fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
