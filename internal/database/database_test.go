// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/recommend"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(&config.DatabaseConfig{
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		QueryTimeout: 10 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func seedCatalog(t *testing.T, db *DB) {
	t.Helper()
	now := time.Now().UTC()

	books := []recommend.Book{
		{
			ID: "hot", Title: "Hot Book", Author: "Jane Doe", PublishedYear: 2026,
			Genres: []string{"Fantasy", "Epic"},
			Reviews: []recommend.Review{
				{ID: "h1", BookID: "hot", UserID: "alice", Rating: 5, CreatedAt: now.Add(-24 * time.Hour)},
				{ID: "h2", BookID: "hot", UserID: "bob", Rating: 4, CreatedAt: now.Add(-48 * time.Hour)},
				{ID: "h3", BookID: "hot", UserID: "carol", Rating: 5, CreatedAt: now.Add(-72 * time.Hour)},
			},
		},
		{
			ID: "warm", Title: "Warm Book", Author: "John Roe", PublishedYear: 2025,
			Genres: []string{"Fantasy"},
			Reviews: []recommend.Review{
				{ID: "w1", BookID: "warm", UserID: "alice", Rating: 4, CreatedAt: now.Add(-24 * time.Hour)},
				{ID: "w2", BookID: "warm", UserID: "dave", Rating: 3, CreatedAt: now.Add(-36 * time.Hour)},
			},
		},
		{
			ID: "cold", Title: "Cold Book", Author: "Jane Doe", PublishedYear: 2020,
			Genres: []string{"Crime"},
			Reviews: []recommend.Review{
				// Outside any reasonable trending window.
				{ID: "c1", BookID: "cold", UserID: "bob", Rating: 5, CreatedAt: now.Add(-90 * 24 * time.Hour)},
			},
		},
		{
			ID: "silent", Title: "Silent Book", Author: "Kim Lee", PublishedYear: 2026,
			Genres: []string{"Fantasy"},
		},
	}

	if err := db.Seed(context.Background(), books); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
}

func bookIDs(books []recommend.Book) []string {
	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}

func TestTrendingBooks(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.TrendingBooks(context.Background(), 30*24*time.Hour, 10)
	if err != nil {
		t.Fatalf("TrendingBooks() error = %v", err)
	}

	// hot has 3 recent reviews, warm has 2; cold's only review is outside
	// the window and silent has none.
	want := []string{"hot", "warm"}
	gotIDs := bookIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("TrendingBooks() = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("TrendingBooks()[%d] = %q, want %q", i, gotIDs[i], want[i])
		}
	}

	// Relations are attached.
	if len(got[0].Genres) != 2 {
		t.Errorf("hot genres = %v, want 2 entries", got[0].Genres)
	}
	if len(got[0].Reviews) != 3 {
		t.Errorf("hot reviews = %d, want 3", len(got[0].Reviews))
	}
}

func TestTrendingBooksHonorsLimit(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.TrendingBooks(context.Background(), 30*24*time.Hour, 1)
	if err != nil {
		t.Fatalf("TrendingBooks() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "hot" {
		t.Errorf("TrendingBooks(limit=1) = %v, want [hot]", bookIDs(got))
	}
}

func TestBooksByGenre(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.BooksByGenre(context.Background(), "fantasy", 10)
	if err != nil {
		t.Fatalf("BooksByGenre() error = %v", err)
	}

	// Ordered by total review count: hot (3), warm (2), silent (0).
	want := []string{"hot", "warm", "silent"}
	gotIDs := bookIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("BooksByGenre() = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("BooksByGenre()[%d] = %q, want %q", i, gotIDs[i], want[i])
		}
	}
}

func TestBooksByGenreUnknownGenre(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.BooksByGenre(context.Background(), "nonexistent", 10)
	if err != nil {
		t.Fatalf("BooksByGenre() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("BooksByGenre(nonexistent) = %v, want empty", bookIDs(got))
	}
}

func TestNewReleases(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.NewReleases(context.Background(), 2025, 10)
	if err != nil {
		t.Fatalf("NewReleases() error = %v", err)
	}

	gotIDs := bookIDs(got)
	if len(gotIDs) != 3 {
		t.Fatalf("NewReleases() = %v, want hot, silent, warm", gotIDs)
	}
	// 2026 publications come before 2025.
	if got[2].ID != "warm" {
		t.Errorf("NewReleases() last = %q, want warm (oldest year)", got[2].ID)
	}
	for _, b := range got {
		if b.PublishedYear < 2025 {
			t.Errorf("NewReleases() included %q from %d", b.ID, b.PublishedYear)
		}
	}
}

func TestBookByID(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.BookByID(context.Background(), "hot")
	if err != nil {
		t.Fatalf("BookByID() error = %v", err)
	}
	if got.Title != "Hot Book" || got.Author != "Jane Doe" {
		t.Errorf("BookByID(hot) = %+v", got)
	}
	if len(got.Genres) != 2 || len(got.Reviews) != 3 {
		t.Errorf("BookByID(hot) relations = (%v, %d reviews), want (2 genres, 3 reviews)",
			got.Genres, len(got.Reviews))
	}
}

func TestBookByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	_, err := db.BookByID(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("BookByID(missing) error = %v, want ErrNotFound", err)
	}
}

func TestReviewsByUser(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.ReviewsByUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ReviewsByUser() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("ReviewsByUser(alice) = %d reviews, want 2", len(got))
	}
	for _, r := range got {
		if r.UserID != "alice" {
			t.Errorf("review %q has user %q, want alice", r.ID, r.UserID)
		}
	}
	// Newest first.
	if got[0].CreatedAt.Before(got[1].CreatedAt) {
		t.Error("ReviewsByUser() not ordered newest first")
	}
}

func TestCoReviewers(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	// alice positively rated hot and warm. bob and carol rated hot >= 4;
	// dave rated warm with only 3.
	got, err := db.CoReviewers(context.Background(), []string{"hot", "warm"}, "alice", 4, 10)
	if err != nil {
		t.Fatalf("CoReviewers() error = %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("CoReviewers() = %v, want bob and carol", got)
	}
	if got["bob"] != 1 || got["carol"] != 1 {
		t.Errorf("CoReviewers() = %v, want overlap 1 each", got)
	}
	if _, ok := got["alice"]; ok {
		t.Error("CoReviewers() included the excluded user")
	}
	if _, ok := got["dave"]; ok {
		t.Error("CoReviewers() included a below-threshold reviewer")
	}
}

func TestCoReviewersEmptyInput(t *testing.T) {
	db := newTestDB(t)

	got, err := db.CoReviewers(context.Background(), nil, "alice", 4, 10)
	if err != nil {
		t.Fatalf("CoReviewers(nil) error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("CoReviewers(nil) = %v, want empty map", got)
	}
}

func TestPositiveReviewsByUsers(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.PositiveReviewsByUsers(context.Background(), []string{"bob", "dave"}, 4)
	if err != nil {
		t.Fatalf("PositiveReviewsByUsers() error = %v", err)
	}

	// bob: hot (4) and cold (5). dave's warm review is a 3 and excluded.
	if len(got) != 2 {
		t.Fatalf("PositiveReviewsByUsers() = %d reviews, want 2", len(got))
	}
	for _, r := range got {
		if r.UserID != "bob" {
			t.Errorf("unexpected review %+v", r)
		}
		if r.Rating < 4 {
			t.Errorf("review %q rating = %d, want >= 4", r.ID, r.Rating)
		}
	}
}

func TestBooksByIDsPreservesOrder(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	got, err := db.BooksByIDs(context.Background(), []string{"cold", "missing", "hot"})
	if err != nil {
		t.Fatalf("BooksByIDs() error = %v", err)
	}

	want := []string{"cold", "hot"}
	gotIDs := bookIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("BooksByIDs() = %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Errorf("BooksByIDs()[%d] = %q, want %q", i, gotIDs[i], want[i])
		}
	}
}

func TestBooksSharingGenresOrAuthor(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	ref, err := db.BookByID(context.Background(), "hot")
	if err != nil {
		t.Fatalf("BookByID() error = %v", err)
	}

	got, err := db.BooksSharingGenresOrAuthor(context.Background(), ref, 10)
	if err != nil {
		t.Fatalf("BooksSharingGenresOrAuthor() error = %v", err)
	}

	gotSet := make(map[string]bool)
	for _, b := range got {
		gotSet[b.ID] = true
	}

	// warm and silent share the Fantasy genre; cold shares the author.
	for _, want := range []string{"warm", "silent", "cold"} {
		if !gotSet[want] {
			t.Errorf("BooksSharingGenresOrAuthor() missing %q (got %v)", want, bookIDs(got))
		}
	}
	if gotSet["hot"] {
		t.Error("BooksSharingGenresOrAuthor() included the reference book")
	}
}

func TestInsertBookIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	b := recommend.Book{
		ID: "b1", Title: "Original", Author: "Jane Doe", PublishedYear: 2025,
		Genres: []string{"Fantasy"},
	}
	if err := db.InsertBook(context.Background(), b); err != nil {
		t.Fatalf("InsertBook() error = %v", err)
	}

	b.Title = "Updated"
	if err := db.InsertBook(context.Background(), b); err != nil {
		t.Fatalf("InsertBook() second call error = %v", err)
	}

	got, err := db.BookByID(context.Background(), "b1")
	if err != nil {
		t.Fatalf("BookByID() error = %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("Title = %q, want Updated", got.Title)
	}
	if len(got.Genres) != 1 {
		t.Errorf("Genres = %v, want a single entry", got.Genres)
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
