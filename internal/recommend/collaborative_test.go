// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func newTestCollaborative(store Store) *CollaborativeFilter {
	return NewCollaborativeFilter(store, DefaultConfig(), zerolog.Nop())
}

func TestCollaborativeRecommendNoSignal(t *testing.T) {
	tests := []struct {
		name  string
		store *fakeStore
	}{
		{
			name:  "user with no reviews",
			store: &fakeStore{},
		},
		{
			name: "user with only negative reviews",
			store: &fakeStore{
				reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
					return []Review{{BookID: "b1", Rating: 2}}, nil
				},
			},
		},
		{
			name: "no co-reviewers",
			store: &fakeStore{
				reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
					return []Review{{BookID: "b1", Rating: 5}}, nil
				},
			},
		},
		{
			name: "neighbors endorsed only already-reviewed books",
			store: &fakeStore{
				reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
					return []Review{{BookID: "b1", Rating: 5}}, nil
				},
				coReviewers: func(_ context.Context, _ []string, _ string, _, _ int) (map[string]int, error) {
					return map[string]int{"neighbor": 1}, nil
				},
				positiveReviews: func(_ context.Context, _ []string, _ int) ([]Review, error) {
					return []Review{{BookID: "b1", UserID: "neighbor", Rating: 5}}, nil
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestCollaborative(tt.store)
			got, err := f.Recommend(context.Background(), "user-1", 10)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("Recommend() = %v, want empty non-nil list", got)
			}
		})
	}
}

func TestCollaborativeRecommendRanksByAffinity(t *testing.T) {
	// user-1 liked b1 and b2. Two neighbors: close (overlap 2) endorses
	// x and y, far (overlap 1) endorses y and z.
	//
	// affinity(x) = 2 * 5/5           = 2.0
	// affinity(y) = 2 * 4/5 + 1 * 5/5 = 2.6
	// affinity(z) = 1 * 4/5           = 0.8
	store := &fakeStore{
		reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
			return []Review{
				{BookID: "b1", UserID: "user-1", Rating: 5},
				{BookID: "b2", UserID: "user-1", Rating: 4},
			}, nil
		},
		coReviewers: func(_ context.Context, liked []string, exclude string, _, _ int) (map[string]int, error) {
			if exclude != "user-1" {
				t.Errorf("exclude = %q, want user-1", exclude)
			}
			if len(liked) != 2 {
				t.Errorf("liked books = %v, want both positives", liked)
			}
			return map[string]int{"close": 2, "far": 1}, nil
		},
		positiveReviews: func(_ context.Context, _ []string, _ int) ([]Review, error) {
			return []Review{
				{BookID: "x", UserID: "close", Rating: 5},
				{BookID: "y", UserID: "close", Rating: 4},
				{BookID: "y", UserID: "far", Rating: 5},
				{BookID: "z", UserID: "far", Rating: 4},
			}, nil
		},
		booksByIDs: func(_ context.Context, ids []string) ([]Book, error) {
			return namedBooks(ids...), nil
		},
	}

	f := newTestCollaborative(store)
	got, err := f.Recommend(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	wantOrder := []string{"y", "x", "z"}
	gotIDs := resultIDs(got)
	if len(gotIDs) != len(wantOrder) {
		t.Fatalf("result = %v, want %v", gotIDs, wantOrder)
	}
	for i := range wantOrder {
		if gotIDs[i] != wantOrder[i] {
			t.Errorf("result[%d] = %q, want %q", i, gotIDs[i], wantOrder[i])
		}
	}

	// y has two supporting endorsements, x and z one each; confidence
	// follows the sample size.
	if got[0].Confidence <= got[1].Confidence {
		t.Errorf("confidence(y) = %v, want > confidence(x) = %v", got[0].Confidence, got[1].Confidence)
	}
	for i, rb := range got {
		if rb.Reason != "Readers with similar taste rated this highly" {
			t.Errorf("result[%d].Reason = %q", i, rb.Reason)
		}
	}
}

func TestCollaborativeRecommendExcludesOwnBooks(t *testing.T) {
	store := &fakeStore{
		reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
			return []Review{{BookID: "mine", UserID: "user-1", Rating: 5}}, nil
		},
		coReviewers: func(_ context.Context, _ []string, _ string, _, _ int) (map[string]int, error) {
			return map[string]int{"neighbor": 1}, nil
		},
		positiveReviews: func(_ context.Context, _ []string, _ int) ([]Review, error) {
			return []Review{
				{BookID: "mine", UserID: "neighbor", Rating: 5},
				{BookID: "new", UserID: "neighbor", Rating: 5},
			}, nil
		},
		booksByIDs: func(_ context.Context, ids []string) ([]Book, error) {
			return namedBooks(ids...), nil
		},
	}

	f := newTestCollaborative(store)
	got, err := f.Recommend(context.Background(), "user-1", 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("Recommend() = %v, want only the unreviewed book", resultIDs(got))
	}
}

func TestCollaborativeRecommendHonorsLimit(t *testing.T) {
	store := &fakeStore{
		reviewsByUser: func(_ context.Context, _ string) ([]Review, error) {
			return []Review{{BookID: "b1", UserID: "user-1", Rating: 5}}, nil
		},
		coReviewers: func(_ context.Context, _ []string, _ string, _, _ int) (map[string]int, error) {
			return map[string]int{"neighbor": 1}, nil
		},
		positiveReviews: func(_ context.Context, _ []string, _ int) ([]Review, error) {
			return []Review{
				{BookID: "c1", UserID: "neighbor", Rating: 5},
				{BookID: "c2", UserID: "neighbor", Rating: 5},
				{BookID: "c3", UserID: "neighbor", Rating: 5},
			}, nil
		},
		booksByIDs: func(_ context.Context, ids []string) ([]Book, error) {
			return namedBooks(ids...), nil
		},
	}

	f := newTestCollaborative(store)
	got, err := f.Recommend(context.Background(), "user-1", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("result length = %d, want 2", len(got))
	}
}
