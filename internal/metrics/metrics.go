// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package metrics provides Prometheus metrics collection for observability.
//
// Metrics are exposed at the /metrics endpoint in Prometheus text format.
//
// Recommendation metrics:
//   - recommend_requests_total: served requests (counter)
//     Labels: operation, source (ai, collaborative, content, trending,
//     genre, new_releases)
//   - recommend_request_duration_seconds: operation latency (histogram)
//     Labels: operation
//   - recommend_provider_errors_total: remote provider failures (counter)
//     Labels: operation
//   - recommend_store_errors_total: store query failures (counter)
//     Labels: query
//   - recommend_fallback_total: fallback activations (counter)
//     Labels: operation, fallback
//
// Cache metrics:
//   - cache_hits_total / cache_misses_total (counter)
//     Labels: cache_type
//
// Circuit breaker metrics:
//   - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
//   - circuit_breaker_requests_total (counter), labels: name, result
//   - circuit_breaker_transitions_total (counter), labels: name, from, to
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecommendationRequests counts served recommendation requests by
	// operation and contributing source.
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total recommendation requests served by operation and source",
		},
		[]string{"operation", "source"},
	)

	// RequestDuration tracks per-operation latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Recommendation operation latency in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
		},
		[]string{"operation"},
	)

	// ProviderErrors counts remote recommender failures by operation.
	ProviderErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_provider_errors_total",
			Help: "Total remote recommendation provider failures",
		},
		[]string{"operation"},
	)

	// StoreErrors counts store query failures by query kind.
	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_store_errors_total",
			Help: "Total store query failures during recommendation requests",
		},
		[]string{"query"},
	)

	// FallbackActivations counts degraded responses by operation and the
	// fallback that answered.
	FallbackActivations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_fallback_total",
			Help: "Total fallback activations by operation and fallback source",
		},
		[]string{"operation", "fallback"},
	)

	// CacheHits counts response cache hits.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	// CacheMisses counts response cache misses.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)

	// CircuitBreakerState reports the provider breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerRequests counts breaker-mediated requests by outcome.
	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Circuit breaker requests by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	// CircuitBreakerTransitions counts breaker state transitions.
	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)
