// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package query provides SQL query building utilities for the database package.
// It reduces code duplication and provides type-safe query construction.
package query

import (
	"strings"
	"time"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
// It ensures consistent parameter handling and reduces SQL injection risks.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddBooks([]string{"b1", "b2"})
//	wb.AddMinRating(4)
//	whereClause, args := wb.Build()
//	// book_id IN (?, ?) AND rating >= ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments.
// This is useful for custom conditions not covered by helper methods.
//
// Parameters:
//   - clause: SQL condition fragment (e.g., "user_id <> ?")
//   - args: Arguments to bind to placeholders in the clause
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddBooks adds a book filter using IN clause.
// Generates "book_id IN (?, ?, ...)" with proper parameterization.
// An empty slice is skipped.
func (wb *WhereBuilder) AddBooks(bookIDs []string) *WhereBuilder {
	return wb.addIn("book_id", bookIDs)
}

// AddUsers adds a reviewer filter using IN clause.
// Generates "user_id IN (?, ?, ...)" with proper parameterization.
// An empty slice is skipped.
func (wb *WhereBuilder) AddUsers(userIDs []string) *WhereBuilder {
	return wb.addIn("user_id", userIDs)
}

// AddMinRating adds a rating floor filter.
// Generates "rating >= ?" for restricting to positive reviews.
func (wb *WhereBuilder) AddMinRating(minRating int) *WhereBuilder {
	wb.clauses = append(wb.clauses, "rating >= ?")
	wb.args = append(wb.args, minRating)
	return wb
}

// AddReviewedSince adds a review recency filter.
// Generates "created_at >= ?" for trending-style windows.
func (wb *WhereBuilder) AddReviewedSince(since time.Time) *WhereBuilder {
	wb.clauses = append(wb.clauses, "created_at >= ?")
	wb.args = append(wb.args, since)
	return wb
}

func (wb *WhereBuilder) addIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	clause, args := In(column, values)
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were added.
//
// Returns:
//   - string: Complete WHERE clause (without "WHERE" keyword)
//   - []interface{}: Arguments to bind to placeholders
//
// Example:
//
//	whereClause, args := wb.Build()
//	query := fmt.Sprintf("SELECT * FROM reviews WHERE %s", whereClause)
//	db.Query(query, args...)
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with "WHERE " prefix.
// Useful for direct SQL construction without manual prefix addition.
//
// Returns:
//   - string: Complete WHERE clause with "WHERE " prefix
//   - []interface{}: Arguments to bind to placeholders
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
// Useful for conditional logic based on filter complexity.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}

// In builds a parameterized IN condition for a column.
// Generates "column IN (?, ?, ...)" with one placeholder per value.
// The caller must ensure values is non-empty.
//
// Parameters:
//   - column: Column name, optionally table-qualified (e.g., "bg.book_id")
//   - values: Values to bind to the placeholders
func In(column string, values []string) (string, []interface{}) {
	placeholders := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return column + " IN (" + strings.Join(placeholders, ", ") + ")", args
}
