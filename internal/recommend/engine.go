// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/bookwise/internal/cache"
	"github.com/tomtom215/bookwise/internal/metrics"
)

// Provenance strings attached to ranked results. The catalog-view strings
// are load-bearing: downstream clients and the test suite match on them.
const (
	// ReasonTrending annotates trending-view results.
	ReasonTrending = "Trending based on recent reviews"
	// ReasonGenre annotates genre-view results.
	ReasonGenre = "Popular in this genre"
	// ReasonNewRelease annotates new-release results.
	ReasonNewRelease = "Recently published"
	// ReasonAIPersonalized annotates provider-sourced personalized results.
	ReasonAIPersonalized = "AI recommendation based on your reading history"
	// ReasonAISimilar annotates provider-sourced similarity results.
	ReasonAISimilar = "AI-identified similar book"
)

// Source labels for request metrics.
const (
	sourceAI            = "ai"
	sourceCollaborative = "collaborative"
	sourceContent       = "content"
	sourceTrending      = "trending"
	sourceGenre         = "genre"
	sourceNewReleases   = "new_releases"
)

// Engine is the public entry point of the recommendation subsystem. It
// coordinates the remote provider and the local fallback components and is
// safe for concurrent use.
type Engine struct {
	cfg      *Config
	logger   zerolog.Logger
	store    Store
	provider Provider

	collaborative *CollaborativeFilter
	content       *ContentSimilarity

	// respCache fronts the catalog views only; nil when disabled.
	respCache *cache.LRU[[]RankedBook]

	// now is injectable for deterministic tests.
	now func() time.Time
}

// NewEngine creates a recommendation engine. The store and provider are
// required collaborators; cfg may be nil for defaults.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewEngine(cfg *Config, store Store, provider Provider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("provider is required")
	}

	e := &Engine{
		cfg:           cfg,
		logger:        logger.With().Str("component", "recommend").Logger(),
		store:         store,
		provider:      provider,
		collaborative: NewCollaborativeFilter(store, cfg, logger),
		content:       NewContentSimilarity(store, cfg, logger),
		now:           time.Now,
	}
	if cfg.Cache.Enabled {
		e.respCache = cache.New[[]RankedBook](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// GenerateRecommendations produces a personalized ranked list for a user.
//
// The limit is split into an AI share (round(limit * AIShareRatio)) and a
// collaborative share (the remainder). On provider success the two sub-lists
// are concatenated, AI results first, each preserving its source order. On
// any provider failure the whole request degrades to the trending view for
// the full original limit; the split is skipped entirely.
func (e *Engine) GenerateRecommendations(ctx context.Context, userID string, limit int) ([]RankedBook, error) {
	if err := validateID("user id", userID); err != nil {
		return nil, err
	}
	limit, err := e.boundLimit(limit)
	if err != nil {
		return nil, err
	}

	start := e.now()
	logger := e.requestLogger("generate_recommendations").With().Str("user_id", userID).Logger()
	defer e.observeLatency("generate_recommendations", start)

	aiShare := int(math.Round(float64(limit) * e.cfg.AIShareRatio))
	fallbackShare := limit - aiShare

	aiBooks, err := e.provider.GenerateRecommendations(ctx, RecommendationQuery{UserID: userID, Limit: aiShare})
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("generate_recommendations").Inc()
		metrics.FallbackActivations.WithLabelValues("generate_recommendations", sourceTrending).Inc()
		logger.Error().Err(err).Msg("recommendation generation failed")
		return e.GetTrendingBooks(ctx, limit)
	}
	if len(aiBooks) > aiShare {
		aiBooks = aiBooks[:aiShare]
	}

	result := make([]RankedBook, 0, limit)
	for _, b := range aiBooks {
		result = append(result, Annotate(b, ReasonAIPersonalized, e.cfg.AIConfidence))
	}
	metrics.RecommendationRequests.WithLabelValues("generate_recommendations", sourceAI).Inc()

	if fallbackShare > 0 {
		local, err := e.collaborative.Recommend(ctx, userID, fallbackShare)
		if err != nil {
			// Already-degraded branch: log and serve the AI share alone
			// rather than failing the whole request.
			metrics.StoreErrors.WithLabelValues("collaborative").Inc()
			logger.Error().Err(err).Msg("collaborative filtering failed")
		} else {
			result = append(result, local...)
			metrics.RecommendationRequests.WithLabelValues("generate_recommendations", sourceCollaborative).Inc()
		}
	}

	logger.Debug().
		Int("ai_share", aiShare).
		Int("fallback_share", fallbackShare).
		Int("returned", len(result)).
		Msg("personalized recommendations complete")

	return result, nil
}

// GetSimilarBooks returns books similar to a reference book. The provider's
// similarity result is returned as-is; on any provider failure the
// content-based fallback answers for the same book and limit. The two
// sources are never blended.
func (e *Engine) GetSimilarBooks(ctx context.Context, bookID string, limit int) ([]RankedBook, error) {
	if err := validateID("book id", bookID); err != nil {
		return nil, err
	}
	limit, err := e.boundLimit(limit)
	if err != nil {
		return nil, err
	}

	start := e.now()
	logger := e.requestLogger("get_similar_books").With().Str("book_id", bookID).Logger()
	defer e.observeLatency("get_similar_books", start)

	aiBooks, err := e.provider.FindSimilarBooks(ctx, SimilarQuery{BookID: bookID, Limit: limit})
	if err != nil {
		metrics.ProviderErrors.WithLabelValues("get_similar_books").Inc()
		metrics.FallbackActivations.WithLabelValues("get_similar_books", sourceContent).Inc()
		logger.Error().Err(err).Msg("similar books generation failed")

		ranked, err := e.content.SimilarBooks(ctx, bookID, limit)
		if err != nil {
			metrics.StoreErrors.WithLabelValues("content").Inc()
			logger.Error().Err(err).Msg("content-based similarity failed")
			return []RankedBook{}, nil
		}
		metrics.RecommendationRequests.WithLabelValues("get_similar_books", sourceContent).Inc()
		return ranked, nil
	}

	if len(aiBooks) > limit {
		aiBooks = aiBooks[:limit]
	}
	result := make([]RankedBook, 0, len(aiBooks))
	for _, b := range aiBooks {
		result = append(result, Annotate(b, ReasonAISimilar, e.cfg.AIConfidence))
	}
	metrics.RecommendationRequests.WithLabelValues("get_similar_books", sourceAI).Inc()
	return result, nil
}

// GetTrendingBooks returns books with recent review activity, ordered by
// recent review count descending as produced by the store query. A store
// failure yields an empty list, never an error.
func (e *Engine) GetTrendingBooks(ctx context.Context, limit int) ([]RankedBook, error) {
	limit, err := e.boundLimit(limit)
	if err != nil {
		return nil, err
	}

	start := e.now()
	defer e.observeLatency("get_trending_books", start)

	cacheKey := fmt.Sprintf("trending:%d", limit)
	if hit, ok := e.cached(cacheKey); ok {
		return hit, nil
	}

	books, err := e.store.TrendingBooks(ctx, e.cfg.TrendingWindow, limit)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("trending").Inc()
		logger := e.requestLogger("get_trending_books")
		logger.Error().Err(err).Msg("trending books query failed")
		return []RankedBook{}, nil
	}

	metrics.RecommendationRequests.WithLabelValues("get_trending_books", sourceTrending).Inc()
	return e.finishCatalog(cacheKey, books, ReasonTrending, e.cfg.TrendingConfidence), nil
}

// GetGenreRecommendations returns the most-reviewed books within a genre. A
// store failure yields an empty list, never an error.
func (e *Engine) GetGenreRecommendations(ctx context.Context, genreID string, limit int) ([]RankedBook, error) {
	if err := validateID("genre id", genreID); err != nil {
		return nil, err
	}
	limit, err := e.boundLimit(limit)
	if err != nil {
		return nil, err
	}

	start := e.now()
	defer e.observeLatency("get_genre_recommendations", start)

	cacheKey := fmt.Sprintf("genre:%s:%d", genreID, limit)
	if hit, ok := e.cached(cacheKey); ok {
		return hit, nil
	}

	books, err := e.store.BooksByGenre(ctx, genreID, limit)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("genre").Inc()
		logger := e.requestLogger("get_genre_recommendations")
		logger.Error().Err(err).Str("genre_id", genreID).Msg("genre recommendations query failed")
		return []RankedBook{}, nil
	}

	metrics.RecommendationRequests.WithLabelValues("get_genre_recommendations", sourceGenre).Inc()
	return e.finishCatalog(cacheKey, books, ReasonGenre, e.cfg.GenreConfidence), nil
}

// GetNewReleases returns recently published books, newest publication year
// first. A store failure yields an empty list, never an error.
func (e *Engine) GetNewReleases(ctx context.Context, limit int) ([]RankedBook, error) {
	limit, err := e.boundLimit(limit)
	if err != nil {
		return nil, err
	}

	start := e.now()
	defer e.observeLatency("get_new_releases", start)

	cacheKey := fmt.Sprintf("new_releases:%d", limit)
	if hit, ok := e.cached(cacheKey); ok {
		return hit, nil
	}

	sinceYear := e.now().Year() - 1
	books, err := e.store.NewReleases(ctx, sinceYear, limit)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("new_releases").Inc()
		logger := e.requestLogger("get_new_releases")
		logger.Error().Err(err).Msg("new releases query failed")
		return []RankedBook{}, nil
	}

	metrics.RecommendationRequests.WithLabelValues("get_new_releases", sourceNewReleases).Inc()
	return e.finishCatalog(cacheKey, books, ReasonNewRelease, e.cfg.NewReleaseConfidence), nil
}

// finishCatalog annotates a catalog-view result in store order and stores it
// in the response cache when enabled.
func (e *Engine) finishCatalog(cacheKey string, books []Book, reason string, confidence float64) []RankedBook {
	ranked := make([]RankedBook, len(books))
	for i, b := range books {
		ranked[i] = Annotate(b, reason, confidence)
	}
	if e.respCache != nil {
		e.respCache.Add(cacheKey, ranked)
	}
	return ranked
}

// cached returns a copy of a cached catalog-view result.
func (e *Engine) cached(key string) ([]RankedBook, bool) {
	if e.respCache == nil {
		return nil, false
	}
	entry, ok := e.respCache.Get(key)
	if !ok {
		metrics.CacheMisses.WithLabelValues("recommend").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("recommend").Inc()
	out := make([]RankedBook, len(entry))
	copy(out, entry)
	return out, true
}

// boundLimit validates and caps the requested result size.
func (e *Engine) boundLimit(limit int) (int, error) {
	if limit <= 0 {
		return 0, fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidRequest, limit)
	}
	if limit > e.cfg.Limits.MaxLimit {
		limit = e.cfg.Limits.MaxLimit
	}
	return limit, nil
}

// requestLogger derives a logger carrying a fresh request ID for tracing.
func (e *Engine) requestLogger(operation string) zerolog.Logger {
	return e.logger.With().
		Str("request_id", uuid.NewString()).
		Str("operation", operation).
		Logger()
}

// observeLatency records the operation latency histogram.
func (e *Engine) observeLatency(operation string, start time.Time) {
	metrics.RequestDuration.WithLabelValues(operation).Observe(e.now().Sub(start).Seconds())
}

// validateID rejects empty identifiers with a descriptive error.
func validateID(name, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrInvalidRequest, name)
	}
	return nil
}
