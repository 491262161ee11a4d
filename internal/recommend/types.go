// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package recommend

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidRequest indicates a programming error in the calling layer, such
// as a non-positive limit or an empty identifier. Operational faults (provider
// outages, store failures) never surface as errors from the public operations.
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Review is a single user review of a book. The free-text body exists in
// storage but is never read by scoring.
type Review struct {
	// ID is the review identifier.
	ID string `json:"id"`

	// BookID references the reviewed book.
	BookID string `json:"book_id"`

	// UserID references the reviewing user. At most one review per user per
	// book is assumed upstream; this subsystem does not enforce it.
	UserID string `json:"user_id"`

	// Rating is the numeric rating, bounded 1-5.
	Rating int `json:"rating"`

	// CreatedAt is when the review was written.
	CreatedAt time.Time `json:"created_at"`
}

// Book is the read-model projection of a catalog book. Within a single
// recommendation request it is immutable: the engine only ever reads it.
type Book struct {
	// ID is the book identifier.
	ID string `json:"id"`

	// Title is the book title.
	Title string `json:"title"`

	// Author is the book author.
	Author string `json:"author"`

	// CoverImage is a reference to the cover image.
	CoverImage string `json:"cover_image,omitempty"`

	// PublishedYear is the year of publication.
	PublishedYear int `json:"published_year"`

	// Genres is the flat list of associated genre names.
	Genres []string `json:"genres,omitempty"`

	// Reviews holds the reviews visible to the originating query. Scoring
	// uses exactly this set; an empty slice means an average rating of 0.
	Reviews []Review `json:"reviews,omitempty"`
}

// RankedBook is the engine output: the source book's public fields plus
// derived ranking metadata. It is never persisted.
type RankedBook struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	CoverImage    string   `json:"cover_image,omitempty"`
	PublishedYear int      `json:"published_year"`
	Genres        []string `json:"genres,omitempty"`

	// AverageRating is the arithmetic mean of the ratings visible to the
	// query, 0 when the book has no reviews.
	AverageRating float64 `json:"average_rating"`

	// TotalReviews is the count of ratings contributing to AverageRating.
	TotalReviews int `json:"total_reviews"`

	// Reason is a human-readable provenance string. Always non-empty.
	Reason string `json:"reason"`

	// Confidence expresses trust in the ranking signal, in [0,1].
	// Advisory metadata only; never used as a filter.
	Confidence float64 `json:"confidence"`
}

// RecommendationQuery is the request shape for personalized provider calls.
type RecommendationQuery struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

// SimilarQuery is the request shape for provider similarity calls.
type SimilarQuery struct {
	BookID string `json:"book_id"`
	Limit  int    `json:"limit"`
}

// Provider is the remote AI recommender capability. Both operations may fail
// with any error; the engine treats all failures uniformly and substitutes
// the documented fallback without distinguishing error subtypes.
type Provider interface {
	// GenerateRecommendations returns AI-ranked books for a user.
	GenerateRecommendations(ctx context.Context, q RecommendationQuery) ([]Book, error)

	// FindSimilarBooks returns AI-ranked books similar to a reference book.
	FindSimilarBooks(ctx context.Context, q SimilarQuery) ([]Book, error)
}

// Store is the read-only data access contract consumed by the engine and its
// fallback components. It is implemented by the database layer; the interface
// lives here to keep the engine free of storage imports.
type Store interface {
	// TrendingBooks returns books having at least one review within the
	// window, ordered by recent review count descending, with genres and
	// reviews eagerly attached.
	TrendingBooks(ctx context.Context, window time.Duration, limit int) ([]Book, error)

	// BooksByGenre returns books associated with the genre, ordered by total
	// review count descending, with relations attached.
	BooksByGenre(ctx context.Context, genreID string, limit int) ([]Book, error)

	// NewReleases returns books with PublishedYear >= sinceYear, ordered by
	// publication year descending, with relations attached.
	NewReleases(ctx context.Context, sinceYear, limit int) ([]Book, error)

	// BookByID returns a single book with relations attached.
	BookByID(ctx context.Context, bookID string) (*Book, error)

	// ReviewsByUser returns all reviews written by a user, newest first.
	ReviewsByUser(ctx context.Context, userID string) ([]Review, error)

	// CoReviewers returns users other than excludeUserID who rated any of
	// the given books at or above minRating, mapped to the number of shared
	// books, capped at limit users by overlap descending.
	CoReviewers(ctx context.Context, bookIDs []string, excludeUserID string, minRating, limit int) (map[string]int, error)

	// PositiveReviewsByUsers returns reviews with rating >= minRating
	// written by any of the given users.
	PositiveReviewsByUsers(ctx context.Context, userIDs []string, minRating int) ([]Review, error)

	// BooksByIDs returns the books for the given identifiers, relations
	// attached. Missing identifiers are silently skipped.
	BooksByIDs(ctx context.Context, bookIDs []string) ([]Book, error)

	// BooksSharingGenresOrAuthor returns candidate books sharing at least
	// one genre or the author with the reference, excluding the reference
	// itself, relations attached.
	BooksSharingGenresOrAuthor(ctx context.Context, ref *Book, limit int) ([]Book, error)
}

// Annotate converts a store book into a ranked result travelling back to the
// caller, computing the rating statistics from the reviews visible on the
// book.
func Annotate(b Book, reason string, confidence float64) RankedBook {
	return RankedBook{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		CoverImage:    b.CoverImage,
		PublishedYear: b.PublishedYear,
		Genres:        b.Genres,
		AverageRating: AverageRating(ratingValues(b.Reviews)),
		TotalReviews:  len(b.Reviews),
		Reason:        reason,
		Confidence:    clampUnit(confidence),
	}
}

// ratingValues extracts the rating values from a review set.
func ratingValues(reviews []Review) []int {
	if len(reviews) == 0 {
		return nil
	}
	out := make([]int, len(reviews))
	for i, r := range reviews {
		out[i] = r.Rating
	}
	return out
}
