// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package database provides the embedded DuckDB catalog store.
//
// # Schema
//
// The store holds four tables: books, genres, the book_genres join
// table, and reviews. All identifiers are opaque TEXT; ratings are
// integers in [1, 5]. Schema creation is idempotent (CREATE TABLE IF
// NOT EXISTS) and runs on every startup.
//
// # Query Shape
//
// Every read method accepts a context and applies the configured query
// timeout on top of it. Book-returning methods hydrate genres and
// reviews in follow-up queries batched over the selected IDs, keeping
// the ranking queries themselves flat.
//
// # Concurrency
//
// DB is safe for concurrent use; it delegates to database/sql's
// connection pool. DuckDB is embedded, so the pool is kept small.
package database
