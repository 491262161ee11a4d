// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package provider

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/metrics"
	"github.com/tomtom215/bookwise/internal/recommend"
)

const breakerName = "ai-provider"

// CircuitBreakerProvider wraps a recommend.Provider with a circuit
// breaker. While the breaker is open, calls fail immediately without
// touching the remote service; the engine's fallback path absorbs the
// failure.
type CircuitBreakerProvider struct {
	inner recommend.Provider
	cb    *gobreaker.CircuitBreaker[[]recommend.Book]
}

// NewCircuitBreakerProvider wraps inner with breaker settings from cfg.
func NewCircuitBreakerProvider(inner recommend.Provider, cfg *config.ProviderConfig) *CircuitBreakerProvider {
	maxFailures := uint32(cfg.BreakerMaxFailures)
	if maxFailures == 0 {
		maxFailures = 5
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[[]recommend.Book](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerProvider{inner: inner, cb: cb}
}

// GenerateRecommendations delegates through the breaker.
func (p *CircuitBreakerProvider) GenerateRecommendations(ctx context.Context, q recommend.RecommendationQuery) ([]recommend.Book, error) {
	return p.execute(func() ([]recommend.Book, error) {
		return p.inner.GenerateRecommendations(ctx, q)
	})
}

// FindSimilarBooks delegates through the breaker.
func (p *CircuitBreakerProvider) FindSimilarBooks(ctx context.Context, q recommend.SimilarQuery) ([]recommend.Book, error) {
	return p.execute(func() ([]recommend.Book, error) {
		return p.inner.FindSimilarBooks(ctx, q)
	})
}

func (p *CircuitBreakerProvider) execute(fn func() ([]recommend.Book, error)) ([]recommend.Book, error) {
	result, err := p.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
	return result, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
