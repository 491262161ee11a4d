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
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/bookwise/internal/config"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// DB wraps the DuckDB connection and provides catalog access methods.
type DB struct {
	conn         *sql.DB
	queryTimeout time.Duration
}

// New opens the DuckDB database at cfg.Path and initializes the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	// Ensure the parent directory exists for file-backed databases.
	if cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("create database directory %s: %w", dbDir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := &DB{
		conn:         conn,
		queryTimeout: cfg.QueryTimeout,
	}

	if err := db.createTables(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return db, nil
}

// Conn returns the underlying SQL connection, for callers that need
// direct access (seeding, migrations).
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping checks that the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Close flushes the WAL with a checkpoint and closes the connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	// Best-effort checkpoint so the next startup replays nothing.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	_, _ = db.conn.ExecContext(ctx, "CHECKPOINT")
	cancel()

	return db.conn.Close()
}

// queryContext derives a context bounded by the configured query timeout.
func (db *DB) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := db.queryTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

func closeQuietly(conn *sql.DB) {
	_ = conn.Close()
}
