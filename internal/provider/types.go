// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package provider

import (
	"time"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// recommendationRequest is the wire shape of POST /v1/recommendations.
type recommendationRequest struct {
	UserID string `json:"user_id"`
	Limit  int    `json:"limit"`
}

// similarRequest is the wire shape of POST /v1/similar.
type similarRequest struct {
	BookID string `json:"book_id"`
	Limit  int    `json:"limit"`
}

// bookResponse is a single book as returned by the remote service.
type bookResponse struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Author        string       `json:"author"`
	CoverImage    string       `json:"cover_image"`
	PublishedYear int          `json:"published_year"`
	Genres        []string     `json:"genres"`
	Reviews       []reviewItem `json:"reviews"`
}

type reviewItem struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// listResponse is the envelope for both endpoints.
type listResponse struct {
	Books []bookResponse `json:"books"`
}

func (br bookResponse) toBook() recommend.Book {
	b := recommend.Book{
		ID:            br.ID,
		Title:         br.Title,
		Author:        br.Author,
		CoverImage:    br.CoverImage,
		PublishedYear: br.PublishedYear,
		Genres:        br.Genres,
	}
	for _, r := range br.Reviews {
		b.Reviews = append(b.Reviews, recommend.Review{
			ID:        r.ID,
			BookID:    r.BookID,
			UserID:    r.UserID,
			Rating:    r.Rating,
			CreatedAt: r.CreatedAt,
		})
	}
	return b
}

func toBooks(items []bookResponse) []recommend.Book {
	books := make([]recommend.Book, 0, len(items))
	for _, it := range items {
		books = append(books, it.toBook())
	}
	return books
}
