package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/innov8-labs/innov8/internal/model"
)

// IdeaFilter narrows ListIdeas. Zero values mean "no filter".
type IdeaFilter struct {
	Category string
	Status   string
	Search   string // substring match on title and description
	Limit    int
	Offset   int
}

// Tags are persisted as a single comma-joined TEXT column. The join and
// split live here so the rest of the code only ever sees []string.
func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// CreateIdea inserts a new idea with zeroed engagement counters.
func (s *Store) CreateIdea(ctx context.Context, idea model.Idea) (model.Idea, error) {
	if idea.ID == "" {
		idea.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if idea.CreatedAt.IsZero() {
		idea.CreatedAt = now
	}
	idea.UpdatedAt = now
	if idea.Status == "" {
		idea.Status = model.StatusDraft
	}
	if idea.Tags == nil {
		idea.Tags = []string{}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO ideas (id, user_id, title, description, category, status, tags, is_public, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		idea.ID, idea.UserID, idea.Title, idea.Description, idea.Category,
		string(idea.Status), joinTags(idea.Tags), boolToInt(idea.IsPublic),
		fmtTime(idea.CreatedAt), fmtTime(idea.UpdatedAt),
	)
	if err != nil {
		return model.Idea{}, fmt.Errorf("storage: create idea: %w", err)
	}
	return idea, nil
}

const ideaColumns = `i.id, i.user_id, i.title, i.description, i.category, i.status, i.tags,
	i.is_public, i.likes_count, i.comments_count, i.ratings_count, i.average_rating,
	u.name, u.avatar_url, i.created_at, i.updated_at`

// GetIdea fetches a single idea with its author's name and avatar.
// Visibility is the caller's concern.
func (s *Store) GetIdea(ctx context.Context, id string) (model.Idea, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas i JOIN users u ON u.id = i.user_id WHERE i.id = ?`, id)
	idea, err := scanIdea(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Idea{}, ErrNotFound
	}
	if err != nil {
		return model.Idea{}, fmt.Errorf("storage: get idea: %w", err)
	}
	return idea, nil
}

// ListIdeas returns public ideas matching the filter, newest first, plus the
// total count before limit/offset for pagination.
func (s *Store) ListIdeas(ctx context.Context, filter IdeaFilter) ([]model.Idea, int, error) {
	where := []string{"i.is_public = 1"}
	args := []any{}

	if filter.Category != "" {
		where = append(where, "i.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Status != "" {
		where = append(where, "i.status = ?")
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where = append(where, "(i.title LIKE ? OR i.description LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ideas i WHERE `+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("storage: count ideas: %w", err)
	}

	query := `SELECT ` + ideaColumns + ` FROM ideas i JOIN users u ON u.id = i.user_id
		WHERE ` + cond + ` ORDER BY i.created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("storage: list ideas: %w", err)
	}
	defer rows.Close()

	ideas := []model.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("storage: scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, total, rows.Err()
}

// ListIdeasByUser returns all of a user's ideas, public or not, newest first.
func (s *Store) ListIdeasByUser(ctx context.Context, userID string) ([]model.Idea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas i JOIN users u ON u.id = i.user_id
		 WHERE i.user_id = ? ORDER BY i.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("storage: list ideas by user: %w", err)
	}
	defer rows.Close()

	ideas := []model.Idea{}
	for rows.Next() {
		idea, err := scanIdea(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// ListComments returns an idea's comments with author names, newest first.
func (s *Store) ListComments(ctx context.Context, ideaID string) ([]model.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.idea_id, c.user_id, c.content, u.name, c.created_at
		 FROM comments c JOIN users u ON u.id = c.user_id
		 WHERE c.idea_id = ? ORDER BY c.created_at DESC`, ideaID)
	if err != nil {
		return nil, fmt.Errorf("storage: list comments: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var (
			c         model.Comment
			createdAt string
		)
		if err := rows.Scan(&c.ID, &c.IdeaID, &c.UserID, &c.Content, &c.AuthorName, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: scan comment: %w", err)
		}
		c.CreatedAt = parseTime(createdAt)
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIdea(row rowScanner) (model.Idea, error) {
	var (
		idea      model.Idea
		status    string
		tags      string
		isPublic  int
		createdAt string
		updatedAt string
	)
	err := row.Scan(
		&idea.ID, &idea.UserID, &idea.Title, &idea.Description, &idea.Category,
		&status, &tags, &isPublic,
		&idea.LikesCount, &idea.CommentsCount, &idea.RatingsCount, &idea.AverageRating,
		&idea.AuthorName, &idea.AuthorAvatar, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Idea{}, err
	}
	idea.Status = model.IdeaStatus(status)
	idea.Tags = splitTags(tags)
	idea.IsPublic = isPublic != 0
	idea.CreatedAt = parseTime(createdAt)
	idea.UpdatedAt = parseTime(updatedAt)
	return idea, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
