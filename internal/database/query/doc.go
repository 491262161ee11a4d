// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package query provides SQL query building utilities for the database package.
//
// This package reduces code duplication and provides type-safe query construction
// for parameterized SQL WHERE clauses. It ensures consistent parameter handling
// and prevents SQL injection vulnerabilities.
//
// # Overview
//
// The WhereBuilder is the primary component, providing a fluent interface for
// constructing WHERE clauses with properly parameterized queries:
//
//	wb := query.NewWhereBuilder()
//	wb.AddBooks([]string{"b1", "b2"})
//	wb.AddMinRating(4)
//	wb.AddClause("user_id <> ?", "alice")
//	whereClause, args := wb.Build()
//	// Result: "book_id IN (?, ?) AND rating >= ? AND user_id <> ?"
//	// Args: ["b1", "b2", 4, "alice"]
//
// # Usage Example
//
// Building a review query with multiple filters:
//
//	func CoReviewers(ctx context.Context, bookIDs []string, exclude string, minRating int) (map[string]int, error) {
//	    wb := query.NewWhereBuilder()
//	    wb.AddBooks(bookIDs)
//	    wb.AddClause("user_id <> ?", exclude)
//	    wb.AddMinRating(minRating)
//
//	    whereClause, args := wb.Build()
//
//	    sql := fmt.Sprintf(`
//	        SELECT user_id, COUNT(DISTINCT book_id)
//	        FROM reviews
//	        WHERE %s
//	        GROUP BY user_id
//	    `, whereClause)
//
//	    rows, err := db.QueryContext(ctx, sql, args...)
//	    // ...
//	}
//
// The package-level In helper builds standalone IN conditions for queries
// that embed the condition in a subquery or join rather than a flat WHERE:
//
//	clause, args := query.In("g.name", ref.Genres)
//	// Result: "g.name IN (?, ?)" with the genre names as args
//
// # Available Filter Methods
//
// The WhereBuilder provides methods for common filter types:
//
//   - AddBooks: Filters reviews by book identifier list (IN clause)
//   - AddUsers: Filters reviews by reviewer identifier list (IN clause)
//   - AddMinRating: Filters by rating floor (rating >= ?)
//   - AddReviewedSince: Filters by review recency (created_at >= ?)
//   - AddClause: Adds custom WHERE clause with parameters
//
// # SQL Injection Prevention
//
// All methods use parameterized queries with ? placeholders:
//
//	// Safe - parameters are properly escaped by the database driver
//	wb.AddUsers(userInput)  // Generates: "user_id IN (?, ?)"
//
//	// The generated SQL is safe regardless of input content
//	// Never concatenate user input directly into SQL strings
//
// # Thread Safety
//
// WhereBuilder instances are not thread-safe. Create a new instance per query
// or protect concurrent access with appropriate synchronization.
//
// # Performance
//
//   - Zero allocations for empty builders (returns "1=1")
//   - Efficient string building using slices
//   - No reflection or dynamic SQL parsing
//
// # See Also
//
//   - internal/database: Main database package using this builder
package query
