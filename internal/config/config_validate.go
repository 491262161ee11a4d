// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateProvider(); err != nil {
		return err
	}

	if err := c.validateRecommend(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Database.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1, got %d", c.Database.MaxOpenConns)
	}
	if c.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive, got %s", c.Database.QueryTimeout)
	}
	return nil
}

// validateProvider validates the remote provider section (only if enabled).
func (c *Config) validateProvider() error {
	if !c.Provider.Enabled {
		return nil // provider is optional - no validation needed when disabled
	}

	if c.Provider.URL == "" {
		return fmt.Errorf("BOOKWISE_PROVIDER_URL is required when BOOKWISE_PROVIDER_ENABLED=true")
	}
	if err := validateHTTPURL(c.Provider.URL, "provider.url"); err != nil {
		return err
	}
	if c.Provider.APIKey == "" {
		return fmt.Errorf("BOOKWISE_PROVIDER_API_KEY is required when BOOKWISE_PROVIDER_ENABLED=true")
	}
	if c.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %s", c.Provider.Timeout)
	}
	if c.Provider.RateLimit < 0 {
		return fmt.Errorf("provider.rate_limit must not be negative, got %g", c.Provider.RateLimit)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	if r.AIShareRatio < 0 || r.AIShareRatio > 1 {
		return fmt.Errorf("recommend.ai_share_ratio must be in [0, 1], got %g", r.AIShareRatio)
	}
	if r.TrendingWindowDays < 1 {
		return fmt.Errorf("recommend.trending_window_days must be at least 1, got %d", r.TrendingWindowDays)
	}
	if r.PositiveRating < 1 || r.PositiveRating > 5 {
		return fmt.Errorf("recommend.positive_rating must be in [1, 5], got %d", r.PositiveRating)
	}
	if r.DefaultLimit < 1 {
		return fmt.Errorf("recommend.default_limit must be at least 1, got %d", r.DefaultLimit)
	}
	if r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend.max_limit (%d) must not be below recommend.default_limit (%d)",
			r.MaxLimit, r.DefaultLimit)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of trace, debug, info, error, warn; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL checks that rawURL parses and uses http or https.
func validateHTTPURL(rawURL, fieldName string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", fieldName, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", fieldName, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", fieldName)
	}
	return nil
}
