// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// InsertBook writes a book, its genre associations, and any attached
// reviews. Genres are created on first use; the genre identifier is the
// slugified name, so repeated inserts converge on the same row.
func (db *DB) InsertBook(ctx context.Context, b recommend.Book) error {
	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	const bookStmt = `
		INSERT INTO books (id, title, author, cover_image, published_year)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			author = excluded.author,
			cover_image = excluded.cover_image,
			published_year = excluded.published_year
	`
	if _, err := db.conn.ExecContext(ctx, bookStmt, b.ID, b.Title, b.Author, b.CoverImage, b.PublishedYear); err != nil {
		return fmt.Errorf("insert book %s: %w", b.ID, err)
	}

	for _, genre := range b.Genres {
		genreID := genreSlug(genre)
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO genres (id, name) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
			genreID, genre); err != nil {
			return fmt.Errorf("insert genre %s: %w", genre, err)
		}
		if _, err := db.conn.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			b.ID, genreID); err != nil {
			return fmt.Errorf("link genre %s: %w", genre, err)
		}
	}

	for _, r := range b.Reviews {
		if err := db.InsertReview(ctx, r); err != nil {
			return err
		}
	}

	return nil
}

// InsertReview writes a single review. A missing review ID is generated.
func (db *DB) InsertReview(ctx context.Context, r recommend.Review) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	const stmt = `
		INSERT INTO reviews (id, book_id, user_id, rating, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET rating = excluded.rating
	`
	if _, err := db.conn.ExecContext(ctx, stmt, r.ID, r.BookID, r.UserID, r.Rating, r.CreatedAt); err != nil {
		return fmt.Errorf("insert review %s: %w", r.ID, err)
	}
	return nil
}

// Seed loads a batch of books, typically at startup of a demo instance
// or in tests.
func (db *DB) Seed(ctx context.Context, books []recommend.Book) error {
	for _, b := range books {
		if err := db.InsertBook(ctx, b); err != nil {
			return err
		}
	}
	return nil
}

// genreSlug derives a stable genre identifier from its display name.
func genreSlug(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}
