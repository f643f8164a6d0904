// Package sqlite is the default on-disk store for stock records.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// DB wraps sqlx.DB opened on a SQLite file
type DB struct {
	*sqlx.DB
	path string
}

// Open opens (creating if needed) the SQLite file at path and verifies it
func Open(ctx context.Context, path string, maxConns int) (*DB, error) {
	log.Info().Str("path", path).Msg("Opening SQLite store...")

	// WAL lets readers proceed while another connection holds the file
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	log.Info().Str("path", path).Msg("SQLite store ready")

	return &DB{DB: db, path: path}, nil
}

// Path returns the backing file
func (d *DB) Path() string {
	return d.path
}

// Close closes the underlying pool
func (d *DB) Close() error {
	log.Info().Str("path", d.path).Msg("Closing SQLite store...")
	return d.DB.Close()
}
