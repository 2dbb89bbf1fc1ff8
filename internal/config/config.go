// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"ANANDDA_DB_PATH" envDefault:"./data/anandda.db"`
	SessionSecret string `env:"ANANDDA_SESSION_SECRET,required"`
	ServerHost    string `env:"ANANDDA_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ANANDDA_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ANANDDA_ENV" envDefault:"development"`
	LogLevel      string `env:"ANANDDA_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"ANANDDA_REDIS_URL"`                          // Optional Redis URL for distributed caching
	CachePrefix  string `env:"ANANDDA_CACHE_PREFIX" envDefault:"anandda:"` // Redis key prefix
	CacheTTL     int    `env:"ANANDDA_CACHE_TTL" envDefault:"3600"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"ANANDDA_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries

	// Cloudinary configuration
	CloudinaryCloudName string `env:"ANANDDA_CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"ANANDDA_CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"ANANDDA_CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"ANANDDA_CLOUDINARY_UPLOAD_FOLDER"`

	// Uploads
	UploadMaxDimension int   `env:"ANANDDA_UPLOAD_MAX_DIMENSION" envDefault:"2400"` // Longest image side in pixels, 0 disables
	UploadMaxBytes     int64 `env:"ANANDDA_UPLOAD_MAX_BYTES" envDefault:"52428800"`

	// Flipbook configuration
	FlipbookWait         time.Duration `env:"ANANDDA_FLIPBOOK_WAIT" envDefault:"10s"`         // How long a request waits for a probe
	FlipbookProbeTimeout time.Duration `env:"ANANDDA_FLIPBOOK_PROBE_TIMEOUT" envDefault:"8s"` // Per-page image check timeout
	FlipbookWarmSchedule string        `env:"ANANDDA_FLIPBOOK_WARM_SCHEDULE" envDefault:"@every 30m"`
	FlipbookCacheTTL     time.Duration `env:"ANANDDA_FLIPBOOK_CACHE_TTL" envDefault:"24h"`

	// Seeding configuration
	AdminEmail    string `env:"ANANDDA_ADMIN_EMAIL"`    // Seeded admin account, skipped when empty
	AdminPassword string `env:"ANANDDA_ADMIN_PASSWORD"` // Seeded admin password
	AdminName     string `env:"ANANDDA_ADMIN_NAME" envDefault:"Administrator"`
	DemoMode      bool   `env:"ANANDDA_DEMO_MODE" envDefault:"false"` // Seed sample published content

	// Audit log retention, 0 keeps entries forever
	AuditRetention time.Duration `env:"ANANDDA_AUDIT_RETENTION" envDefault:"2160h"`
}

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

// CloudinaryEnabled returns true if Cloudinary credentials are configured.
func (c Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// SeedAdmin returns true if an admin account should be seeded.
func (c Config) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// MinAdminPasswordLength is the minimum length of a seeded admin password.
const MinAdminPasswordLength = 12

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ANANDDA_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("ANANDDA_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ANANDDA_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.AdminEmail != "" && len(cfg.AdminPassword) < MinAdminPasswordLength {
		return nil, fmt.Errorf("ANANDDA_ADMIN_PASSWORD must be at least %d characters when ANANDDA_ADMIN_EMAIL is set",
			MinAdminPasswordLength)
	}

	if cfg.UploadMaxDimension < 0 {
		return nil, fmt.Errorf("ANANDDA_UPLOAD_MAX_DIMENSION must not be negative")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
