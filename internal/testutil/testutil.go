// Package testutil provides shared test infrastructure for tests that need
// a real database. The server uses an embedded SQLite file, so a test store
// is just a fresh file in a temp dir with migrations applied.
package testutil

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/innov8-labs/innov8/internal/storage"
	"github.com/innov8-labs/innov8/migrations"
)

// NewTestStore opens a fresh database under t.TempDir and runs all
// migrations. The store is closed automatically when the test ends.
func NewTestStore(t *testing.T) *storage.Store {
	t.Helper()
	ctx := context.Background()

	store, err := storage.Open(ctx, filepath.Join(t.TempDir(), "innov8-test.db"), TestLogger())
	if err != nil {
		t.Fatalf("testutil: open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.RunMigrations(ctx, migrations.FS); err != nil {
		t.Fatalf("testutil: run migrations: %v", err)
	}
	return store
}

// TestLogger returns a logger configured for test output (warns only).
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
