// Copyright (c) 2026 Daniel Marchetti
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"FIRMSITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FIRMSITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"FIRMSITE_ENV" envDefault:"development"`
	LogLevel   string `env:"FIRMSITE_LOG_LEVEL" envDefault:"info"`

	// Site identity
	SiteName string `env:"FIRMSITE_SITE_NAME" envDefault:"Marchetti & Cole"`
	SiteURL  string `env:"FIRMSITE_SITE_URL" envDefault:"http://localhost:8080"`

	// CMS configuration
	CMSBaseURL        string `env:"FIRMSITE_CMS_BASE_URL,required"` // e.g. https://cms.example.com
	CMSToken          string `env:"FIRMSITE_CMS_TOKEN"`             // Optional bearer token for the CMS read API
	CMSTimeoutSeconds int    `env:"FIRMSITE_CMS_TIMEOUT" envDefault:"5"`

	// Cache configuration
	RedisURL        string `env:"FIRMSITE_REDIS_URL"`                       // Optional Redis URL for distributed caching
	CachePrefix     string `env:"FIRMSITE_CACHE_PREFIX" envDefault:"firm:"` // Redis key prefix
	CacheTTLSeconds int    `env:"FIRMSITE_CACHE_TTL" envDefault:"60"`       // Content revalidation interval in seconds

	// Revalidation webhook
	RevalidateSecret string `env:"FIRMSITE_REVALIDATE_SECRET"`

	// Outbound automation endpoints
	LeadWebhookURL string `env:"FIRMSITE_LEAD_WEBHOOK_URL"`
	ChatWebhookURL string `env:"FIRMSITE_CHAT_WEBHOOK_URL"`
}

// MinRevalidateSecretLength is the minimum required length for the
// revalidation webhook secret in production.
const MinRevalidateSecretLength = 16

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// CacheTTL returns the content revalidation interval as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CMSTimeout returns the per-request CMS fetch timeout as a duration.
func (c Config) CMSTimeout() time.Duration {
	return time.Duration(c.CMSTimeoutSeconds) * time.Second
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.CMSTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("FIRMSITE_CMS_TIMEOUT must be positive, got %d", cfg.CMSTimeoutSeconds)
	}

	if cfg.CacheTTLSeconds <= 0 {
		return nil, fmt.Errorf("FIRMSITE_CACHE_TTL must be positive, got %d", cfg.CacheTTLSeconds)
	}

	// A production deployment must not expose the revalidation endpoint
	// without a strong secret; development may run without one.
	if !cfg.IsDevelopment() && len(cfg.RevalidateSecret) < MinRevalidateSecretLength {
		return nil, fmt.Errorf("FIRMSITE_REVALIDATE_SECRET must be at least %d bytes long in production; "+
			"generate one with: openssl rand -base64 24", MinRevalidateSecretLength)
	}

	return cfg, nil
}
