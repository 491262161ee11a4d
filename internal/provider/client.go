// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/recommend"
)

// Client is the HTTP client for the remote recommendation service.
// It implements recommend.Provider.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.ProviderConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: limiter,
	}
}

// GenerateRecommendations requests a personalized list for a user.
func (c *Client) GenerateRecommendations(ctx context.Context, q recommend.RecommendationQuery) ([]recommend.Book, error) {
	var resp listResponse
	req := recommendationRequest{UserID: q.UserID, Limit: q.Limit}
	if err := c.post(ctx, "/v1/recommendations", req, &resp); err != nil {
		return nil, fmt.Errorf("generate recommendations: %w", err)
	}
	return toBooks(resp.Books), nil
}

// FindSimilarBooks requests books similar to a reference book.
func (c *Client) FindSimilarBooks(ctx context.Context, q recommend.SimilarQuery) ([]recommend.Book, error) {
	var resp listResponse
	req := similarRequest{BookID: q.BookID, Limit: q.Limit}
	if err := c.post(ctx, "/v1/similar", req, &resp); err != nil {
		return nil, fmt.Errorf("find similar books: %w", err)
	}
	return toBooks(resp.Books), nil
}

// post executes an authenticated JSON POST and decodes the response.
func (c *Client) post(ctx context.Context, path string, payload, result any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
