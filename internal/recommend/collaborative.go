// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
)

// CollaborativeFilter is the locally computed fallback for personalized
// recommendations. It infers candidate books from the review behavior of
// users with overlapping taste, using only store queries.
//
// The neighborhood is built by co-review overlap: users who positively rated
// the same books as the requesting user. Candidate books are those the
// neighborhood rated positively, excluding books the requesting user has
// already reviewed. Each candidate's affinity is:
//
//	affinity(book) = sum over supporting reviews of
//	                 overlap(reviewer) * rating / 5
//
// so books endorsed by closer neighbors with higher ratings rank first.
type CollaborativeFilter struct {
	store  Store
	cfg    *Config
	logger zerolog.Logger
}

// NewCollaborativeFilter creates the collaborative filtering fallback.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func NewCollaborativeFilter(store Store, cfg *Config, logger zerolog.Logger) *CollaborativeFilter {
	return &CollaborativeFilter{
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "collaborative_filter").Logger(),
	}
}

// Recommend returns up to limit books ranked by affinity score. It never
// errors on missing signal: a user with no reviews, no positively rated
// books, or no co-reviewers gets an empty list.
func (f *CollaborativeFilter) Recommend(ctx context.Context, userID string, limit int) ([]RankedBook, error) {
	mine, err := f.store.ReviewsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load user reviews: %w", err)
	}
	if len(mine) == 0 {
		return []RankedBook{}, nil
	}

	reviewed := make(map[string]struct{}, len(mine))
	var liked []string
	for _, r := range mine {
		reviewed[r.BookID] = struct{}{}
		if r.Rating >= f.cfg.PositiveRating {
			liked = append(liked, r.BookID)
		}
	}
	if len(liked) == 0 {
		return []RankedBook{}, nil
	}

	overlap, err := f.store.CoReviewers(ctx, liked, userID, f.cfg.PositiveRating, f.cfg.MaxCoReviewers)
	if err != nil {
		return nil, fmt.Errorf("load co-reviewers: %w", err)
	}
	if len(overlap) == 0 {
		return []RankedBook{}, nil
	}

	neighbors := make([]string, 0, len(overlap))
	for id := range overlap {
		neighbors = append(neighbors, id)
	}

	endorsements, err := f.store.PositiveReviewsByUsers(ctx, neighbors, f.cfg.PositiveRating)
	if err != nil {
		return nil, fmt.Errorf("load neighborhood reviews: %w", err)
	}

	affinity := make(map[string]float64)
	support := make(map[string]int)
	for _, r := range endorsements {
		if _, seen := reviewed[r.BookID]; seen {
			continue
		}
		affinity[r.BookID] += float64(overlap[r.UserID]) * float64(r.Rating) / 5
		support[r.BookID]++
	}
	if len(affinity) == 0 {
		return []RankedBook{}, nil
	}

	ids := make([]string, 0, len(affinity))
	for id := range affinity {
		ids = append(ids, id)
	}
	sort.SliceStable(ids, func(i, j int) bool {
		if affinity[ids[i]] != affinity[ids[j]] {
			return affinity[ids[i]] > affinity[ids[j]]
		}
		// Deterministic order for equal affinity.
		return ids[i] < ids[j]
	})
	if len(ids) > limit {
		ids = ids[:limit]
	}

	books, err := f.store.BooksByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load candidate books: %w", err)
	}
	byID := make(map[string]Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	out := make([]RankedBook, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, Annotate(
			b,
			"Readers with similar taste rated this highly",
			SampleConfidence(support[id], f.cfg.ConfidencePivot),
		))
	}
	return out, nil
}
