// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
// Shipping with a well-known signing key would make every issued token
// forgeable, so startup fails instead of falling back.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string `env:"CORPSITE_DB_PATH" envDefault:"./data/corpsite.db"`
	TokenSecret string `env:"CORPSITE_TOKEN_SECRET,required"`
	ServerHost  string `env:"CORPSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort  int    `env:"CORPSITE_SERVER_PORT" envDefault:"8080"`
	Env         string `env:"CORPSITE_ENV" envDefault:"development"`
	LogLevel    string `env:"CORPSITE_LOG_LEVEL" envDefault:"info"`

	// TokenTTL is the validity window of issued session tokens.
	TokenTTL time.Duration `env:"CORPSITE_TOKEN_TTL" envDefault:"24h"`

	// AdminCredentials is the fixed administrator allow-list:
	// semicolon-separated "username:role:argon2idhash" entries.
	// Hashes are produced with `corpsite -hash-password`.
	AdminCredentials string `env:"CORPSITE_ADMIN_CREDENTIALS,required"`

	// StatsTimezone is the reference timezone for "today" dashboard counts.
	StatsTimezone string `env:"CORPSITE_STATS_TIMEZONE" envDefault:"UTC"`

	// DefaultLanguage is the locale the root redirect falls back to.
	DefaultLanguage string `env:"CORPSITE_DEFAULT_LANGUAGE" envDefault:"en"`
}

// MinTokenSecretLength is the minimum required length for the signing secret.
const MinTokenSecretLength = 32

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Location resolves the configured stats timezone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.StatsTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading CORPSITE_STATS_TIMEZONE %q: %w", c.StatsTimezone, err)
	}
	return loc, nil
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.TokenSecret) < MinTokenSecretLength {
		return nil, fmt.Errorf("CORPSITE_TOKEN_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinTokenSecretLength, len(cfg.TokenSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.TokenSecret == weak {
			return nil, fmt.Errorf("CORPSITE_TOKEN_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("CORPSITE_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}
