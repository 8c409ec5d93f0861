package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/migrations"
)

// newTestStore opens a fresh database in a temp dir and applies migrations.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "innov8-test.db")
	store, err := Open(ctx, path, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.RunMigrations(ctx, migrations.FS))
	return store
}

func mustCreateUser(t *testing.T, s *Store, email, name string) model.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), model.User{
		Email:        email,
		Name:         name,
		PasswordHash: "x",
	})
	require.NoError(t, err)
	return user
}

func mustCreateIdea(t *testing.T, s *Store, userID string, public bool) model.Idea {
	t.Helper()
	idea, err := s.CreateIdea(context.Background(), model.Idea{
		UserID:      userID,
		Title:       "Solar-powered delivery drones",
		Description: "Autonomous last-mile delivery using solar charging stations.",
		Category:    "hardware",
		Tags:        []string{"drones", "solar", "logistics"},
		IsPublic:    public,
	})
	require.NoError(t, err)
	return idea
}

func TestRunMigrations_Idempotent(t *testing.T) {
	store := newTestStore(t)
	// A second run must skip every already-applied file.
	require.NoError(t, store.RunMigrations(context.Background(), migrations.FS))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_ = mustCreateUser(t, store, "alice@example.com", "Alice")

	_, err := store.CreateUser(ctx, model.User{
		Email:        "alice@example.com",
		Name:         "Other Alice",
		PasswordHash: "y",
	})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestGetUserByEmail(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created := mustCreateUser(t, store, "bob@example.com", "Bob")

	got, err := store.GetUserByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, "Bob", got.Name)
	require.Equal(t, "x", got.PasswordHash)

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateIdea_TagsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "carol@example.com", "Carol")
	idea := mustCreateIdea(t, store, user.ID, true)

	got, err := store.GetIdea(ctx, idea.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"drones", "solar", "logistics"}, got.Tags)
	require.Equal(t, model.StatusDraft, got.Status)
	require.Equal(t, "Carol", got.AuthorName)
	require.Zero(t, got.LikesCount)
	require.Zero(t, got.CommentsCount)
	require.Zero(t, got.RatingsCount)
	require.Zero(t, got.AverageRating)
}

func TestCreateIdea_NoTags(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "dave@example.com", "Dave")
	idea, err := store.CreateIdea(ctx, model.Idea{
		UserID:      user.ID,
		Title:       "Untitled gadget",
		Description: "A gadget.",
		Category:    "hardware",
		IsPublic:    true,
	})
	require.NoError(t, err)

	got, err := store.GetIdea(ctx, idea.ID)
	require.NoError(t, err)
	require.Equal(t, []string{}, got.Tags)
}

func TestListIdeas_FiltersAndVisibility(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "erin@example.com", "Erin")

	_, err := store.CreateIdea(ctx, model.Idea{
		UserID: user.ID, Title: "AI tutor", Description: "Adaptive learning paths.",
		Category: "edtech", IsPublic: true,
	})
	require.NoError(t, err)
	_, err = store.CreateIdea(ctx, model.Idea{
		UserID: user.ID, Title: "Budget tracker", Description: "Track personal spend.",
		Category: "fintech", IsPublic: true,
	})
	require.NoError(t, err)
	_, err = store.CreateIdea(ctx, model.Idea{
		UserID: user.ID, Title: "Secret project", Description: "Not for listing.",
		Category: "fintech", IsPublic: false,
	})
	require.NoError(t, err)

	// Private ideas never appear in the public list.
	ideas, total, err := store.ListIdeas(ctx, IdeaFilter{Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, ideas, 2)

	ideas, total, err = store.ListIdeas(ctx, IdeaFilter{Category: "fintech", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "Budget tracker", ideas[0].Title)

	ideas, total, err = store.ListIdeas(ctx, IdeaFilter{Search: "learning", Limit: 10})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "AI tutor", ideas[0].Title)

	// But the owner sees everything through ListIdeasByUser.
	mine, err := store.ListIdeasByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
}

func TestListIdeas_Pagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := mustCreateUser(t, store, "frank@example.com", "Frank")
	for range 5 {
		_ = mustCreateIdea(t, store, user.ID, true)
	}

	ideas, total, err := store.ListIdeas(ctx, IdeaFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, ideas, 2)

	ideas, total, err = store.ListIdeas(ctx, IdeaFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Equal(t, 5, total)
	require.Len(t, ideas, 1)
}

func TestGetIdea_NotFound(t *testing.T) {
	store := newTestStore(t)
	_, err := store.GetIdea(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
