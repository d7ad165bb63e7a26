// Package postgres owns the database handle for all binaries.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type Options struct {
	URL          string
	ConnTimeout  time.Duration
	MaxOpenConns int
	MaxIdleConns int
}

// Connect opens a pooled connection and verifies it with a ping.
func Connect(ctx context.Context, opts Options) (*sqlx.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.ConnTimeout)
	defer cancel()

	db, err := sqlx.Open("postgres", opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}
