// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"time"
)

// Config is the root configuration for a Bookwise instance.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Provider  ProviderConfig  `koanf:"provider"`
	Recommend RecommendConfig `koanf:"recommend"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// DatabaseConfig configures the embedded DuckDB store.
type DatabaseConfig struct {
	// Path is the location of the DuckDB database file.
	// Use ":memory:" for an ephemeral in-memory database.
	Path string `koanf:"path"`

	// MaxOpenConns bounds the connection pool. DuckDB is embedded, so
	// connections are cheap, but each holds catalog state.
	MaxOpenConns int `koanf:"max_open_conns"`

	// MaxIdleConns is the number of idle connections retained in the pool.
	MaxIdleConns int `koanf:"max_idle_conns"`

	// ConnMaxLifetime is the maximum lifetime of a pooled connection.
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`

	// QueryTimeout is the per-query deadline applied by the store.
	QueryTimeout time.Duration `koanf:"query_timeout"`
}

// ProviderConfig configures the remote AI recommendation provider.
// When disabled, the engine serves catalog-derived recommendations only.
type ProviderConfig struct {
	// Enabled controls whether the remote provider is consulted at all.
	Enabled bool `koanf:"enabled"`

	// URL is the provider's base URL (e.g. https://api.example.com).
	URL string `koanf:"url"`

	// APIKey is sent as a bearer token on every request.
	APIKey string `koanf:"api_key"`

	// Timeout is the per-request deadline for provider calls.
	// Default: 10s
	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is the sustained request rate allowed against the
	// provider, in requests per second. Zero disables rate limiting.
	RateLimit float64 `koanf:"rate_limit"`

	// RateBurst is the burst size for the rate limiter.
	RateBurst int `koanf:"rate_burst"`

	// BreakerMaxFailures is the consecutive failure count that opens
	// the circuit breaker.
	BreakerMaxFailures int `koanf:"breaker_max_failures"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout"`
}

// RecommendConfig carries the tunable knobs of the recommendation engine.
// The zero value is not usable; defaults are applied by defaultConfig.
type RecommendConfig struct {
	// AIShareRatio is the fraction of a mixed recommendation list
	// sourced from the AI provider. The remainder comes from
	// collaborative filtering. Default: 0.6
	AIShareRatio float64 `koanf:"ai_share_ratio"`

	// TrendingWindowDays is the lookback window for trending books.
	// Default: 30
	TrendingWindowDays int `koanf:"trending_window_days"`

	// PositiveRating is the minimum star rating treated as a positive
	// signal by collaborative filtering. Default: 4
	PositiveRating int `koanf:"positive_rating"`

	// MaxCoReviewers caps the neighborhood size for collaborative
	// filtering. Default: 50
	MaxCoReviewers int `koanf:"max_co_reviewers"`

	// DefaultLimit is the list size used when a caller passes zero.
	// Default: 10
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit is the largest list size a caller may request.
	// Default: 100
	MaxLimit int `koanf:"max_limit"`

	// CacheEnabled turns on the in-process response cache for the
	// catalog views (trending, genre, new releases).
	CacheEnabled bool `koanf:"cache_enabled"`

	// CacheTTL is how long a cached catalog response stays fresh.
	// Default: 5m
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// CacheMaxEntries bounds the response cache. Default: 1024
	CacheMaxEntries int `koanf:"cache_max_entries"`
}

// ServerConfig configures the operational HTTP listener
// (health and metrics endpoints only).
type ServerConfig struct {
	// Addr is the listen address, e.g. ":9090".
	Addr string `koanf:"addr"`

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `koanf:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// ShutdownTimeout is the grace period for in-flight requests
	// during shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig configures structured logging output.
type LoggingConfig struct {
	// Level is one of: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is "json" or "console".
	Format string `koanf:"format"`

	// Caller adds file:line to every log event.
	Caller bool `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied.
// These are overridden by the config file, then by environment variables.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path:            "/data/bookwise.duckdb",
			MaxOpenConns:    4,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Hour,
			QueryTimeout:    10 * time.Second,
		},
		Provider: ProviderConfig{
			Enabled:            false, // catalog-only mode by default
			URL:                "",
			APIKey:             "",
			Timeout:            10 * time.Second,
			RateLimit:          5,
			RateBurst:          10,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
		},
		Recommend: RecommendConfig{
			AIShareRatio:       0.6,
			TrendingWindowDays: 30,
			PositiveRating:     4,
			MaxCoReviewers:     50,
			DefaultLimit:       10,
			MaxLimit:           100,
			CacheEnabled:       true,
			CacheTTL:           5 * time.Minute,
			CacheMaxEntries:    1024,
		},
		Server: ServerConfig{
			Addr:            ":9090",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
