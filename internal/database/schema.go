// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the catalog schema if it does not exist.
// All statements are idempotent, so this runs on every startup.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS books (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			author TEXT NOT NULL,
			cover_image TEXT,
			published_year INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS genres (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE
		)`,

		`CREATE TABLE IF NOT EXISTS book_genres (
			book_id TEXT NOT NULL,
			genre_id TEXT NOT NULL,
			PRIMARY KEY (book_id, genre_id)
		)`,

		`CREATE TABLE IF NOT EXISTS reviews (
			id TEXT PRIMARY KEY,
			book_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_reviews_book ON reviews (book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_created ON reviews (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_book_genres_genre ON book_genres (genre_id)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("execute schema statement: %w", err)
		}
	}

	return nil
}
