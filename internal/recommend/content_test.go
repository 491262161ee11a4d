// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"math"
	"testing"

	"github.com/rs/zerolog"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
		want float64
	}{
		{name: "both empty", a: nil, b: nil, want: 0},
		{name: "one empty", a: []string{"Fantasy"}, b: nil, want: 0},
		{name: "identical", a: []string{"Fantasy", "Epic"}, b: []string{"Fantasy", "Epic"}, want: 1},
		{name: "disjoint", a: []string{"Fantasy"}, b: []string{"Crime"}, want: 0},
		{name: "half overlap", a: []string{"Fantasy", "Epic"}, b: []string{"Fantasy", "Crime"}, want: 1.0 / 3},
		{name: "case insensitive", a: []string{"fantasy"}, b: []string{"Fantasy"}, want: 1},
		{name: "duplicates collapse", a: []string{"Fantasy", "Fantasy"}, b: []string{"Fantasy"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := jaccard(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("jaccard(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSameAuthor(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{a: "Jane Doe", b: "Jane Doe", want: true},
		{a: "jane doe", b: "Jane Doe", want: true},
		{a: " Jane Doe ", b: "Jane Doe", want: true},
		{a: "Jane Doe", b: "John Roe", want: false},
		{a: "", b: "", want: false},
		{a: "Jane Doe", b: "", want: false},
	}

	for _, tt := range tests {
		if got := sameAuthor(tt.a, tt.b); got != tt.want {
			t.Errorf("sameAuthor(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContentSimilarBooksRanking(t *testing.T) {
	ref := &Book{
		ID:     "ref",
		Title:  "The Reference",
		Author: "Jane Doe",
		Genres: []string{"Fantasy", "Epic"},
	}
	candidates := []Book{
		// Same author, full genre overlap: 0.7*1 + 0.3 = 1.0
		{ID: "twin", Author: "Jane Doe", Genres: []string{"Fantasy", "Epic"}},
		// Different author, full genre overlap: 0.7
		{ID: "genre-match", Author: "John Roe", Genres: []string{"Fantasy", "Epic"}},
		// Same author, no shared genres: 0.3
		{ID: "author-match", Author: "Jane Doe", Genres: []string{"Crime"}},
		// Nothing shared: excluded from results
		{ID: "unrelated", Author: "John Roe", Genres: []string{"Crime"}},
	}

	store := &fakeStore{
		bookByID: func(_ context.Context, id string) (*Book, error) {
			if id != "ref" {
				t.Errorf("BookByID(%q), want ref", id)
			}
			return ref, nil
		},
		sharingCandidates: func(_ context.Context, got *Book, limit int) ([]Book, error) {
			if got.ID != "ref" {
				t.Errorf("candidates queried for %q, want ref", got.ID)
			}
			// Candidates widen beyond the requested limit.
			if limit <= 10 {
				t.Errorf("candidate limit = %d, want > 10", limit)
			}
			return candidates, nil
		},
	}

	c := NewContentSimilarity(store, DefaultConfig(), zerolog.Nop())
	got, err := c.SimilarBooks(context.Background(), "ref", 10)
	if err != nil {
		t.Fatalf("SimilarBooks() error = %v", err)
	}

	wantOrder := []string{"twin", "genre-match", "author-match"}
	gotIDs := resultIDs(got)
	if len(gotIDs) != len(wantOrder) {
		t.Fatalf("result = %v, want %v", gotIDs, wantOrder)
	}
	for i := range wantOrder {
		if gotIDs[i] != wantOrder[i] {
			t.Errorf("result[%d] = %q, want %q", i, gotIDs[i], wantOrder[i])
		}
	}

	for i, rb := range got {
		if rb.Reason != "Similar to The Reference" {
			t.Errorf("result[%d].Reason = %q", i, rb.Reason)
		}
		if rb.Confidence <= 0 || rb.Confidence > 1 {
			t.Errorf("result[%d].Confidence = %v, want in (0, 1]", i, rb.Confidence)
		}
	}
}

func TestContentSimilarBooksTieBreaks(t *testing.T) {
	ref := &Book{ID: "ref", Title: "Ref", Author: "Jane Doe", Genres: []string{"Fantasy"}}

	// Identical similarity scores; rating statistics decide the order.
	candidates := []Book{
		{ID: "low-avg", Author: "X", Genres: []string{"Fantasy"}, Reviews: []Review{{Rating: 3}}},
		{ID: "high-avg", Author: "Y", Genres: []string{"Fantasy"}, Reviews: []Review{{Rating: 5}}},
		{ID: "more-reviews", Author: "Z", Genres: []string{"Fantasy"}, Reviews: []Review{{Rating: 3}, {Rating: 3}}},
	}

	store := &fakeStore{
		bookByID: func(_ context.Context, _ string) (*Book, error) { return ref, nil },
		sharingCandidates: func(_ context.Context, _ *Book, _ int) ([]Book, error) {
			return candidates, nil
		},
	}

	c := NewContentSimilarity(store, DefaultConfig(), zerolog.Nop())
	got, err := c.SimilarBooks(context.Background(), "ref", 10)
	if err != nil {
		t.Fatalf("SimilarBooks() error = %v", err)
	}

	wantOrder := []string{"high-avg", "more-reviews", "low-avg"}
	gotIDs := resultIDs(got)
	for i := range wantOrder {
		if gotIDs[i] != wantOrder[i] {
			t.Errorf("result[%d] = %q, want %q (full order %v)", i, gotIDs[i], wantOrder[i], gotIDs)
		}
	}
}

func TestContentSimilarBooksExcludesReference(t *testing.T) {
	ref := &Book{ID: "ref", Title: "Ref", Author: "Jane Doe", Genres: []string{"Fantasy"}}
	store := &fakeStore{
		bookByID: func(_ context.Context, _ string) (*Book, error) { return ref, nil },
		sharingCandidates: func(_ context.Context, _ *Book, _ int) ([]Book, error) {
			// The store query may return the reference row itself.
			return []Book{*ref, {ID: "other", Author: "Jane Doe"}}, nil
		},
	}

	c := NewContentSimilarity(store, DefaultConfig(), zerolog.Nop())
	got, err := c.SimilarBooks(context.Background(), "ref", 10)
	if err != nil {
		t.Fatalf("SimilarBooks() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "other" {
		t.Errorf("result = %v, want only the non-reference book", resultIDs(got))
	}
}

func TestContentSimilarBooksHonorsLimit(t *testing.T) {
	ref := &Book{ID: "ref", Title: "Ref", Author: "Jane Doe", Genres: []string{"Fantasy"}}
	var candidates []Book
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		candidates = append(candidates, Book{ID: id, Genres: []string{"Fantasy"}})
	}

	store := &fakeStore{
		bookByID: func(_ context.Context, _ string) (*Book, error) { return ref, nil },
		sharingCandidates: func(_ context.Context, _ *Book, _ int) ([]Book, error) {
			return candidates, nil
		},
	}

	c := NewContentSimilarity(store, DefaultConfig(), zerolog.Nop())
	got, err := c.SimilarBooks(context.Background(), "ref", 2)
	if err != nil {
		t.Fatalf("SimilarBooks() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("result length = %d, want 2", len(got))
	}
}
