// Bookwise - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookwise

// Package main is the entry point for the Bookwise recommendation server.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Open the embedded DuckDB catalog and create the schema
//  3. Provider: Build the AI provider client with rate limiting and a circuit breaker
//  4. Engine: Wire the recommendation engine with its catalog fallbacks
//  5. HTTP Server: Operational endpoints (health and Prometheus metrics)
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (BOOKWISE_ prefix)
//   - Config file (config.yaml, or BOOKWISE_CONFIG)
//   - Built-in defaults
//
// # Catalog-Only Mode
//
// Bookwise runs WITHOUT a remote AI provider by default. Every
// recommendation then comes from the catalog fallbacks (trending,
// collaborative filtering, content similarity). Enable the provider with:
//
//	export BOOKWISE_PROVIDER_ENABLED=true
//	export BOOKWISE_PROVIDER_URL=https://recommender.example.com
//	export BOOKWISE_PROVIDER_API_KEY=your-api-key
//	./bookwise
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting connections, waits for in-flight requests up to the
// configured shutdown timeout, then closes the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/bookwise/internal/config"
	"github.com/tomtom215/bookwise/internal/database"
	"github.com/tomtom215/bookwise/internal/logging"
	"github.com/tomtom215/bookwise/internal/provider"
	"github.com/tomtom215/bookwise/internal/recommend"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("provider_enabled", cfg.Provider.Enabled).
		Msg("Starting Bookwise")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	aiProvider := buildProvider(cfg)

	engine, err := recommend.NewEngine(buildEngineConfig(cfg), db, aiProvider, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}
	logging.Info().Msg("Recommendation engine initialized")

	// Warm the catalog-view cache so the first real request is served hot.
	warmupCtx, warmupCancel := context.WithTimeout(context.Background(), cfg.Database.QueryTimeout)
	if books, err := engine.GetTrendingBooks(warmupCtx, cfg.Recommend.DefaultLimit); err == nil {
		logging.Info().Int("count", len(books)).Msg("Trending cache warmed")
	}
	warmupCancel()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newRouter(db),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("HTTP server shutdown error")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// buildProvider wires the remote AI provider, or the disabled stand-in
// when no remote service is configured.
func buildProvider(cfg *config.Config) recommend.Provider {
	if !cfg.Provider.Enabled {
		logging.Info().Msg("AI provider disabled - catalog-only mode")
		return provider.Disabled{}
	}

	client := provider.NewClient(&cfg.Provider)
	logging.Info().
		Str("url", cfg.Provider.URL).
		Dur("timeout", cfg.Provider.Timeout).
		Msg("AI provider enabled")

	return provider.NewCircuitBreakerProvider(client, &cfg.Provider)
}

// buildEngineConfig maps the flat application config onto the engine's
// own configuration, keeping the engine package independent of koanf.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.AIShareRatio = cfg.Recommend.AIShareRatio
	ec.TrendingWindow = trendingWindow(cfg.Recommend.TrendingWindowDays)
	ec.PositiveRating = cfg.Recommend.PositiveRating
	ec.MaxCoReviewers = cfg.Recommend.MaxCoReviewers
	ec.Limits.DefaultLimit = cfg.Recommend.DefaultLimit
	ec.Limits.MaxLimit = cfg.Recommend.MaxLimit
	ec.Cache.Enabled = cfg.Recommend.CacheEnabled
	ec.Cache.TTL = cfg.Recommend.CacheTTL
	ec.Cache.MaxEntries = cfg.Recommend.CacheMaxEntries
	return ec
}

func trendingWindow(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
