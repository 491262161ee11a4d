// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package recommend implements the book recommendation engine.
//
// # Architecture
//
// The engine orchestrates a remote AI recommendation provider and a set of
// locally computed signals into ranked book lists:
//
//   - Personalized: remote AI ranking blended with collaborative filtering
//   - Similar books: remote AI similarity with content-based fallback
//   - Catalog views: trending, genre popularity, and new releases computed
//     directly from store queries (no remote call)
//
// # Fallback Cascade
//
// Every public operation is structured as "try primary signal, on failure
// substitute secondary signal". A provider failure on the personalized path
// substitutes the trending view for the full requested limit; a provider
// failure on the similar-books path substitutes content-based similarity.
// Store failures inside catalog views or inside an already-degraded fallback
// path are logged and produce an empty list. Callers therefore always
// receive a list, possibly empty, for operational faults; only invalid
// arguments return an error.
//
// # Statelessness
//
// The engine holds no model state: every call is an independent, idempotent
// computation over the current store contents plus one optional remote call.
// An optional TTL response cache in front of the catalog views is the only
// process-local state and is disabled by default.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, store, provider, logger)
//	if err != nil {
//	    return err
//	}
//
//	books, err := engine.GenerateRecommendations(ctx, userID, 10)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Operations share no mutable state
// beyond the optional response cache, which is internally synchronized.
package recommend
