// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/bookwise/internal/database/query"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// TrendingBooks returns books with at least one review inside the window,
// ordered by recent review count, then average recent rating.
func (db *DB) TrendingBooks(ctx context.Context, window time.Duration, limit int) ([]recommend.Book, error) {
	whereClause, args := query.NewWhereBuilder().
		AddReviewedSince(time.Now().Add(-window)).
		Build()

	stmt := fmt.Sprintf(`
		SELECT
			b.id,
			b.title,
			b.author,
			COALESCE(b.cover_image, '') AS cover_image,
			b.published_year
		FROM books b
		JOIN (
			SELECT book_id, COUNT(*) AS review_count, AVG(rating) AS avg_rating
			FROM reviews
			WHERE %s
			GROUP BY book_id
		) recent ON recent.book_id = b.id
		ORDER BY recent.review_count DESC, recent.avg_rating DESC, b.id
		LIMIT ?
	`, whereClause)
	args = append(args, limit)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	books, err := db.selectBooks(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query trending books: %w", err)
	}

	return db.hydrate(ctx, books)
}

// BooksByGenre returns books associated with the genre, most reviewed first.
func (db *DB) BooksByGenre(ctx context.Context, genreID string, limit int) ([]recommend.Book, error) {
	stmt := `
		SELECT
			b.id,
			b.title,
			b.author,
			COALESCE(b.cover_image, '') AS cover_image,
			b.published_year
		FROM books b
		JOIN book_genres bg ON bg.book_id = b.id
		LEFT JOIN reviews r ON r.book_id = b.id
		WHERE bg.genre_id = ?
		GROUP BY b.id, b.title, b.author, b.cover_image, b.published_year
		ORDER BY COUNT(r.id) DESC, b.id
		LIMIT ?
	`

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	books, err := db.selectBooks(ctx, stmt, genreID, limit)
	if err != nil {
		return nil, fmt.Errorf("query books by genre: %w", err)
	}

	return db.hydrate(ctx, books)
}

// NewReleases returns books published in or after sinceYear, newest first.
func (db *DB) NewReleases(ctx context.Context, sinceYear, limit int) ([]recommend.Book, error) {
	stmt := `
		SELECT
			id,
			title,
			author,
			COALESCE(cover_image, '') AS cover_image,
			published_year
		FROM books
		WHERE published_year >= ?
		ORDER BY published_year DESC, id
		LIMIT ?
	`

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	books, err := db.selectBooks(ctx, stmt, sinceYear, limit)
	if err != nil {
		return nil, fmt.Errorf("query new releases: %w", err)
	}

	return db.hydrate(ctx, books)
}

// BookByID returns a single book with genres and reviews attached.
// Returns ErrNotFound when no book exists with the given identifier.
func (db *DB) BookByID(ctx context.Context, bookID string) (*recommend.Book, error) {
	stmt := `
		SELECT
			id,
			title,
			author,
			COALESCE(cover_image, '') AS cover_image,
			published_year
		FROM books
		WHERE id = ?
	`

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	var b recommend.Book
	row := db.conn.QueryRowContext(ctx, stmt, bookID)
	if err := row.Scan(&b.ID, &b.Title, &b.Author, &b.CoverImage, &b.PublishedYear); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("book %s: %w", bookID, ErrNotFound)
		}
		return nil, fmt.Errorf("query book: %w", err)
	}

	books, err := db.hydrate(ctx, []recommend.Book{b})
	if err != nil {
		return nil, err
	}
	return &books[0], nil
}

// ReviewsByUser returns all reviews written by a user, newest first.
func (db *DB) ReviewsByUser(ctx context.Context, userID string) ([]recommend.Review, error) {
	stmt := `
		SELECT id, book_id, user_id, rating, created_at
		FROM reviews
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("query reviews by user: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// CoReviewers returns users (other than excludeUserID) who rated any of the
// given books at or above minRating, keyed by the number of shared books,
// capped at limit users with the largest overlap.
func (db *DB) CoReviewers(ctx context.Context, bookIDs []string, excludeUserID string, minRating, limit int) (map[string]int, error) {
	if len(bookIDs) == 0 {
		return map[string]int{}, nil
	}

	whereClause, args := query.NewWhereBuilder().
		AddBooks(bookIDs).
		AddClause("user_id <> ?", excludeUserID).
		AddMinRating(minRating).
		Build()

	stmt := fmt.Sprintf(`
		SELECT user_id, COUNT(DISTINCT book_id) AS overlap
		FROM reviews
		WHERE %s
		GROUP BY user_id
		ORDER BY overlap DESC, user_id
		LIMIT ?
	`, whereClause)
	args = append(args, limit)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query co-reviewers: %w", err)
	}
	defer rows.Close()

	overlaps := make(map[string]int)
	for rows.Next() {
		var (
			userID  string
			overlap int
		)
		if err := rows.Scan(&userID, &overlap); err != nil {
			return nil, fmt.Errorf("scan co-reviewer: %w", err)
		}
		overlaps[userID] = overlap
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate co-reviewers: %w", err)
	}

	return overlaps, nil
}

// PositiveReviewsByUsers returns reviews with rating >= minRating written by
// any of the given users.
func (db *DB) PositiveReviewsByUsers(ctx context.Context, userIDs []string, minRating int) ([]recommend.Review, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	whereClause, args := query.NewWhereBuilder().
		AddUsers(userIDs).
		AddMinRating(minRating).
		BuildWithPrefix()

	stmt := fmt.Sprintf(`
		SELECT id, book_id, user_id, rating, created_at
		FROM reviews
		%s
		ORDER BY created_at DESC
	`, whereClause)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query positive reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// BooksByIDs returns the books for the given identifiers with relations
// attached. Unknown identifiers are skipped.
func (db *DB) BooksByIDs(ctx context.Context, bookIDs []string) ([]recommend.Book, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}

	inClause, args := query.In("id", bookIDs)
	stmt := fmt.Sprintf(`
		SELECT
			id,
			title,
			author,
			COALESCE(cover_image, '') AS cover_image,
			published_year
		FROM books
		WHERE %s
	`, inClause)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	books, err := db.selectBooks(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query books by ids: %w", err)
	}

	hydrated, err := db.hydrate(ctx, books)
	if err != nil {
		return nil, err
	}

	// Restore the caller's ordering; IN clauses do not preserve it.
	byID := make(map[string]recommend.Book, len(hydrated))
	for _, b := range hydrated {
		byID[b.ID] = b
	}
	ordered := make([]recommend.Book, 0, len(hydrated))
	for _, id := range bookIDs {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}

// BooksSharingGenresOrAuthor returns candidate books sharing at least one
// genre or the author with the reference, excluding the reference itself.
func (db *DB) BooksSharingGenresOrAuthor(ctx context.Context, ref *recommend.Book, limit int) ([]recommend.Book, error) {
	if ref == nil {
		return nil, fmt.Errorf("reference book is nil")
	}

	var (
		genreClause string
		args        []any
	)
	if len(ref.Genres) > 0 {
		inClause, inArgs := query.In("g.name", ref.Genres)
		genreClause = fmt.Sprintf(`b.id IN (
			SELECT bg.book_id
			FROM book_genres bg
			JOIN genres g ON g.id = bg.genre_id
			WHERE %s
		) OR `, inClause)
		args = append(args, inArgs...)
	}

	stmt := fmt.Sprintf(`
		SELECT
			b.id,
			b.title,
			b.author,
			COALESCE(b.cover_image, '') AS cover_image,
			b.published_year
		FROM books b
		WHERE (%sb.author = ?)
		  AND b.id <> ?
		ORDER BY b.id
		LIMIT ?
	`, genreClause)
	args = append(args, ref.Author, ref.ID, limit)

	ctx, cancel := db.queryContext(ctx)
	defer cancel()

	books, err := db.selectBooks(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query similar candidates: %w", err)
	}

	return db.hydrate(ctx, books)
}

// selectBooks runs a query whose projection matches the book columns and
// scans the results without relations.
func (db *DB) selectBooks(ctx context.Context, stmt string, args ...any) ([]recommend.Book, error) {
	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []recommend.Book
	for rows.Next() {
		var b recommend.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverImage, &b.PublishedYear); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}

	return books, rows.Err()
}

// hydrate attaches genres and reviews to the given books with two batched
// queries over the book IDs.
func (db *DB) hydrate(ctx context.Context, books []recommend.Book) ([]recommend.Book, error) {
	if len(books) == 0 {
		return books, nil
	}

	ids := make([]string, len(books))
	index := make(map[string]int, len(books))
	for i, b := range books {
		ids[i] = b.ID
		index[b.ID] = i
	}

	if err := db.attachGenres(ctx, books, ids, index); err != nil {
		return nil, err
	}
	if err := db.attachReviews(ctx, books, ids, index); err != nil {
		return nil, err
	}

	return books, nil
}

func (db *DB) attachGenres(ctx context.Context, books []recommend.Book, ids []string, index map[string]int) error {
	inClause, args := query.In("bg.book_id", ids)
	stmt := fmt.Sprintf(`
		SELECT bg.book_id, g.name
		FROM book_genres bg
		JOIN genres g ON g.id = bg.genre_id
		WHERE %s
		ORDER BY bg.book_id, g.name
	`, inClause)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID, name string
		if err := rows.Scan(&bookID, &name); err != nil {
			return fmt.Errorf("scan genre: %w", err)
		}
		if i, ok := index[bookID]; ok {
			books[i].Genres = append(books[i].Genres, name)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate genres: %w", err)
	}
	return nil
}

func (db *DB) attachReviews(ctx context.Context, books []recommend.Book, ids []string, index map[string]int) error {
	whereClause, args := query.NewWhereBuilder().AddBooks(ids).Build()
	stmt := fmt.Sprintf(`
		SELECT id, book_id, user_id, rating, created_at
		FROM reviews
		WHERE %s
		ORDER BY created_at DESC
	`, whereClause)

	rows, err := db.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	reviews, err := scanReviews(rows)
	if err != nil {
		return err
	}

	for _, r := range reviews {
		if i, ok := index[r.BookID]; ok {
			books[i].Reviews = append(books[i].Reviews, r)
		}
	}
	return nil
}

func scanReviews(rows *sql.Rows) ([]recommend.Review, error) {
	var reviews []recommend.Review
	for rows.Next() {
		var r recommend.Review
		if err := rows.Scan(&r.ID, &r.BookID, &r.UserID, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}
