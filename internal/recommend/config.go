// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"fmt"
	"time"
)

// Config holds the engine configuration.
type Config struct {
	// AIShareRatio is the fraction of a personalized request served by the
	// remote provider; the remainder goes to collaborative filtering.
	// The AI share is round(limit * AIShareRatio).
	AIShareRatio float64

	// TrendingWindow bounds how recent a review must be to count toward the
	// trending view.
	TrendingWindow time.Duration

	// AIConfidence annotates provider-sourced results.
	AIConfidence float64

	// TrendingConfidence annotates trending-view results.
	TrendingConfidence float64

	// GenreConfidence annotates genre-view results.
	GenreConfidence float64

	// NewReleaseConfidence annotates new-release results.
	NewReleaseConfidence float64

	// PositiveRating is the minimum rating treated as a positive signal by
	// collaborative filtering.
	PositiveRating int

	// MaxCoReviewers caps the collaborative filtering neighborhood size.
	MaxCoReviewers int

	// ConfidencePivot is the sample size at which sample-based confidence
	// reaches 0.5 (n / (n + pivot)).
	ConfidencePivot float64

	// CandidateMultiplier widens fallback candidate queries relative to the
	// requested limit so ranking has something to cut.
	CandidateMultiplier int

	// Similarity holds the content-based similarity weights.
	Similarity SimilarityConfig

	// Limits bounds request sizes.
	Limits LimitsConfig

	// Cache configures the optional catalog-view response cache.
	Cache CacheConfig
}

// SimilarityConfig contains the content-based similarity weights. The two
// weights are normalized to sum to 1 at validation time.
type SimilarityConfig struct {
	// GenreWeight scales the Jaccard genre overlap term.
	GenreWeight float64

	// AuthorWeight scales the same-author term.
	AuthorWeight float64
}

// LimitsConfig bounds request sizes.
type LimitsConfig struct {
	// DefaultLimit applies when a caller passes no preference upstream.
	DefaultLimit int

	// MaxLimit caps any single request.
	MaxLimit int
}

// CacheConfig configures the catalog-view response cache.
type CacheConfig struct {
	// Enabled turns the cache on. Off by default: the engine is specified
	// stateless and the cache is purely an optimization.
	Enabled bool

	// TTL is the entry lifetime.
	TTL time.Duration

	// MaxEntries caps the cache size.
	MaxEntries int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		AIShareRatio:         0.6,
		TrendingWindow:       30 * 24 * time.Hour,
		AIConfidence:         0.9,
		TrendingConfidence:   0.8,
		GenreConfidence:      0.8,
		NewReleaseConfidence: 0.7,
		PositiveRating:       4,
		MaxCoReviewers:       50,
		ConfidencePivot:      5,
		CandidateMultiplier:  4,
		Similarity: SimilarityConfig{
			GenreWeight:  0.7,
			AuthorWeight: 0.3,
		},
		Limits: LimitsConfig{
			DefaultLimit: 10,
			MaxLimit:     100,
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTL:        5 * time.Minute,
			MaxEntries: 1024,
		},
	}
}

// Validate checks the configuration for consistency and normalizes the
// similarity weights.
func (c *Config) Validate() error {
	if c.AIShareRatio < 0 || c.AIShareRatio > 1 {
		return fmt.Errorf("ai share ratio must be in [0,1], got %f", c.AIShareRatio)
	}
	if c.TrendingWindow <= 0 {
		return fmt.Errorf("trending window must be positive, got %s", c.TrendingWindow)
	}
	for name, v := range map[string]float64{
		"ai":          c.AIConfidence,
		"trending":    c.TrendingConfidence,
		"genre":       c.GenreConfidence,
		"new_release": c.NewReleaseConfidence,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s confidence must be in [0,1], got %f", name, v)
		}
	}
	if c.PositiveRating < 1 || c.PositiveRating > 5 {
		return fmt.Errorf("positive rating must be in [1,5], got %d", c.PositiveRating)
	}
	if c.MaxCoReviewers <= 0 {
		return fmt.Errorf("max co-reviewers must be positive, got %d", c.MaxCoReviewers)
	}
	if c.ConfidencePivot <= 0 {
		return fmt.Errorf("confidence pivot must be positive, got %f", c.ConfidencePivot)
	}
	if c.CandidateMultiplier < 1 {
		return fmt.Errorf("candidate multiplier must be >= 1, got %d", c.CandidateMultiplier)
	}
	if c.Limits.DefaultLimit <= 0 || c.Limits.MaxLimit <= 0 {
		return fmt.Errorf("limits must be positive, got default=%d max=%d", c.Limits.DefaultLimit, c.Limits.MaxLimit)
	}
	if c.Limits.DefaultLimit > c.Limits.MaxLimit {
		return fmt.Errorf("default limit %d exceeds max limit %d", c.Limits.DefaultLimit, c.Limits.MaxLimit)
	}
	if c.Cache.Enabled && (c.Cache.TTL <= 0 || c.Cache.MaxEntries <= 0) {
		return fmt.Errorf("cache ttl and max entries must be positive when cache is enabled")
	}

	total := c.Similarity.GenreWeight + c.Similarity.AuthorWeight
	if total <= 0 {
		return fmt.Errorf("similarity weights must sum to a positive value")
	}
	c.Similarity.GenreWeight /= total
	c.Similarity.AuthorWeight /= total

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
