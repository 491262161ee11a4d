// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// flakyProvider fails until healed.
type flakyProvider struct {
	calls  int
	healed bool
}

var errRemote = errors.New("remote failure")

func (p *flakyProvider) GenerateRecommendations(_ context.Context, _ recommend.RecommendationQuery) ([]recommend.Book, error) {
	p.calls++
	if p.healed {
		return []recommend.Book{{ID: "ok"}}, nil
	}
	return nil, errRemote
}

func (p *flakyProvider) FindSimilarBooks(_ context.Context, _ recommend.SimilarQuery) ([]recommend.Book, error) {
	p.calls++
	if p.healed {
		return []recommend.Book{{ID: "ok"}}, nil
	}
	return nil, errRemote
}

func breakerTestConfig() *config.ProviderConfig {
	return &config.ProviderConfig{
		BreakerMaxFailures: 3,
		BreakerTimeout:     50 * time.Millisecond,
	}
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	inner := &flakyProvider{healed: true}
	p := NewCircuitBreakerProvider(inner, breakerTestConfig())

	books, err := p.GenerateRecommendations(context.Background(), recommend.RecommendationQuery{UserID: "u1", Limit: 5})
	if err != nil {
		t.Fatalf("GenerateRecommendations() error = %v", err)
	}
	if len(books) != 1 || books[0].ID != "ok" {
		t.Errorf("books = %+v, want [ok]", books)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &flakyProvider{}
	p := NewCircuitBreakerProvider(inner, breakerTestConfig())

	for i := 0; i < 3; i++ {
		if _, err := p.GenerateRecommendations(context.Background(), recommend.RecommendationQuery{UserID: "u1", Limit: 5}); !errors.Is(err, errRemote) {
			t.Fatalf("call %d error = %v, want remote failure", i, err)
		}
	}

	// Breaker is open; the next call must be rejected without reaching
	// the remote service.
	callsBefore := inner.calls
	_, err := p.GenerateRecommendations(context.Background(), recommend.RecommendationQuery{UserID: "u1", Limit: 5})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if inner.calls != callsBefore {
		t.Errorf("remote called %d times while open, want no new calls", inner.calls-callsBefore)
	}
}

func TestBreakerRecoversAfterTimeout(t *testing.T) {
	inner := &flakyProvider{}
	p := NewCircuitBreakerProvider(inner, breakerTestConfig())

	for i := 0; i < 3; i++ {
		_, _ = p.FindSimilarBooks(context.Background(), recommend.SimilarQuery{BookID: "b1", Limit: 5})
	}

	inner.healed = true
	time.Sleep(80 * time.Millisecond)

	books, err := p.FindSimilarBooks(context.Background(), recommend.SimilarQuery{BookID: "b1", Limit: 5})
	if err != nil {
		t.Fatalf("FindSimilarBooks() after recovery error = %v", err)
	}
	if len(books) != 1 {
		t.Errorf("books = %+v, want the healed response", books)
	}
}
