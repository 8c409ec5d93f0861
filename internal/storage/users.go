package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/innov8-labs/innov8/internal/model"
)

// Timestamps are stored as RFC 3339 UTC text so the file is portable and
// readable with the sqlite3 CLI.
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CreateUser inserts a new user. Returns ErrDuplicate when the email is taken.
func (s *Store) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, avatar_url, bio, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.AvatarURL, user.Bio, fmtTime(user.CreatedAt),
	)
	if err != nil {
		if isConstraint(err) {
			return model.User{}, fmt.Errorf("storage: create user: %w", ErrDuplicate)
		}
		return model.User{}, fmt.Errorf("storage: create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail fetches a user by email, including the password hash for
// credential verification.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return s.getUser(ctx, `SELECT id, email, name, password_hash, avatar_url, bio, created_at
		FROM users WHERE email = ?`, email)
}

// GetUserByID fetches a user by primary key.
func (s *Store) GetUserByID(ctx context.Context, id string) (model.User, error) {
	return s.getUser(ctx, `SELECT id, email, name, password_hash, avatar_url, bio, created_at
		FROM users WHERE id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, query string, arg any) (model.User, error) {
	var (
		u         model.User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.AvatarURL, &u.Bio, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("storage: get user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return u, nil
}
