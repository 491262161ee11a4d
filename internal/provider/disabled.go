// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package provider

import (
	"context"
	"errors"

	"github.com/tomtom215/bookwise/internal/recommend"
)

// ErrDisabled is returned by Disabled for every call.
var ErrDisabled = errors.New("ai provider disabled")

// Disabled is the provider used when no remote service is configured.
// Every call fails immediately, which routes the engine onto its
// catalog fallbacks.
type Disabled struct{}

// GenerateRecommendations always fails with ErrDisabled.
func (Disabled) GenerateRecommendations(context.Context, recommend.RecommendationQuery) ([]recommend.Book, error) {
	return nil, ErrDisabled
}

// FindSimilarBooks always fails with ErrDisabled.
func (Disabled) FindSimilarBooks(context.Context, recommend.SimilarQuery) ([]recommend.Book, error) {
	return nil, ErrDisabled
}
