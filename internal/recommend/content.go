// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// ContentSimilarity is the content-based fallback for similar-book requests.
// Given a reference book it ranks candidates by genre and author overlap,
// using only store queries. It is exercised when the remote provider's
// similarity capability is unavailable.
//
// The similarity between the reference and a candidate is:
//
//	sim(ref, c) = w_genre * jaccard(genres_ref, genres_c) +
//	              w_author * sameAuthor(ref, c)
//
// Ties are broken by higher average rating, then by total review count.
type ContentSimilarity struct {
	store  Store
	cfg    *Config
	logger zerolog.Logger
}

// NewContentSimilarity creates the content-based similarity fallback.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewContentSimilarity(store Store, cfg *Config, logger zerolog.Logger) *ContentSimilarity {
	return &ContentSimilarity{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "content_similarity").Logger(),
	}
}

// SimilarBooks ranks books by overlap with the reference book, excluding the
// reference itself, returning up to limit results.
func (c *ContentSimilarity) SimilarBooks(ctx context.Context, bookID string, limit int) ([]RankedBook, error) {
	ref, err := c.store.BookByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("load reference book: %w", err)
	}

	candidates, err := c.store.BooksSharingGenresOrAuthor(ctx, ref, limit*c.cfg.CandidateMultiplier)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}

	type scored struct {
		book  Book
		score float64
		avg   float64
	}

	ranked := make([]scored, 0, len(candidates))
	for _, cand := range candidates {
		if cand.ID == ref.ID {
			continue
		}
		score := c.similarity(ref, &cand)
		if score <= 0 {
			continue
		}
		ranked = append(ranked, scored{
			book:  cand,
			score: score,
			avg:   AverageRating(ratingValues(cand.Reviews)),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		if ranked[i].avg != ranked[j].avg {
			return ranked[i].avg > ranked[j].avg
		}
		return len(ranked[i].book.Reviews) > len(ranked[j].book.Reviews)
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]RankedBook, len(ranked))
	for i, s := range ranked {
		out[i] = Annotate(s.book, fmt.Sprintf("Similar to %s", ref.Title), s.score)
	}
	return out, nil
}

// similarity computes the weighted overlap between the reference and a
// candidate. The result is in [0,1] because the weights are normalized.
func (c *ContentSimilarity) similarity(ref, cand *Book) float64 {
	score := c.cfg.Similarity.GenreWeight * jaccard(ref.Genres, cand.Genres)
	if sameAuthor(ref.Author, cand.Author) {
		score += c.cfg.Similarity.AuthorWeight
	}
	return score
}

// jaccard computes the Jaccard similarity of two name sets, case-insensitive.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[strings.ToLower(s)] = struct{}{}
	}

	var intersection int
	seen := make(map[string]struct{}, len(b))
	for _, s := range b {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := set[key]; ok {
			intersection++
		}
	}

	union := len(set) + len(seen) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// sameAuthor compares authors case-insensitively, ignoring surrounding space.
func sameAuthor(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(a, b)
}
