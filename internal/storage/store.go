// Package storage provides the SQLite storage layer for Innov8.
//
// It owns the database handle, the forward-only migration runner, and query
// methods for all tables. The engagement counters on ideas (likes_count,
// comments_count, ratings_count, average_rating) are denormalized and are
// only updated inside the same transaction as the fact rows they summarize.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"

	_ "modernc.org/sqlite"
)

// Store wraps a database/sql handle backed by a single SQLite file.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the SQLite database at path.
//
// The connection is configured for a single-process web server: WAL journal
// for concurrent readers, a busy timeout so writers queue instead of failing
// immediately, and immediate transactions so a write transaction holds the
// write lock from BEGIN rather than upgrading mid-transaction.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=%s&_pragma=%s&_pragma=%s&_pragma=%s",
		path,
		url.QueryEscape("journal_mode=WAL"),
		url.QueryEscape("busy_timeout=5000"),
		url.QueryEscape("foreign_keys=ON"),
		url.QueryEscape("synchronous=NORMAL"),
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}

	// SQLite allows one writer at a time; a single connection sidesteps
	// SQLITE_BUSY between our own connections while WAL keeps reads cheap.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", path, err)
	}

	return &Store{db: db, logger: logger}, nil
}

// DB returns the underlying handle for use by other packages.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Ping checks connectivity to the database.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close shuts down the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing on success and rolling
// back on error. Busy/locked conflicts are retried with backoff because
// SQLite surfaces writer contention as an error rather than blocking forever.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	return WithRetry(ctx, defaultMaxRetries, defaultBaseDelay, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("storage: begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("storage: commit tx: %w", err)
		}
		return nil
	})
}
