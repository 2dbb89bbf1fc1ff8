// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"net/url"
	"time"
)

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects the Redis backend when set.
	// Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the key prefix for Redis.
	Prefix string

	DefaultTTL time.Duration

	// MaxSize is the maximum number of entries for memory cache (0 = unlimited)
	MaxSize int

	CleanupInterval time.Duration
}

// DefaultConfig returns the in-memory configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Prefix:          "anandda:",
		DefaultTTL:      time.Hour,
		MaxSize:         10000,
		CleanupInterval: time.Minute,
	}
}

// New creates a cache for cfg and reports which backend serves it.
// An unreachable Redis falls back to memory with a warning.
func New(cfg Config) (Cacher, string) {
	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			opts.DefaultTTL = cfg.DefaultTTL
		}

		rc, err := NewRedisCache(opts)
		if err == nil {
			return rc, BackendRedis
		}
		slog.Warn("redis cache unavailable, falling back to memory",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err, "category", "cache")
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cfg.CleanupInterval,
	}), BackendMemory
}

// SanitizeRedisURL masks the password in a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "[invalid URL]"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
