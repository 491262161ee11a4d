// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package provider implements the remote AI recommendation client.
//
// The client speaks a small JSON API: POST /v1/recommendations for
// personalized lists and POST /v1/similar for similarity queries, both
// authenticated with a bearer token. Requests pass through a token
// bucket rate limiter and, when wrapped by CircuitBreakerProvider, a
// circuit breaker that rejects calls fast while the remote service is
// failing.
//
// All errors are returned to the caller untyped; the recommendation
// engine treats every provider failure identically and falls back to
// catalog-derived results.
package provider
