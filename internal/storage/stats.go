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

// This file holds the engagement mutations. Each one runs in a single
// immediate transaction so the denormalized counters on ideas can never
// drift from the fact tables: either the fact row and the counter update
// both commit, or neither does.

// ToggleLike adds a like if the user has none on the idea, removes it
// otherwise. Returns the resulting state and the updated like count.
func (s *Store) ToggleLike(ctx context.Context, userID, ideaID string) (liked bool, likesCount int, err error) {
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ideaExists(ctx, tx, ideaID); err != nil {
			return err
		}

		var likeID string
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM likes WHERE user_id = ? AND idea_id = ?`, userID, ideaID,
		).Scan(&likeID)
		switch {
		case err == nil:
			if _, err := tx.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, likeID); err != nil {
				return fmt.Errorf("storage: delete like: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE ideas SET likes_count = likes_count - 1 WHERE id = ?`, ideaID); err != nil {
				return fmt.Errorf("storage: decrement likes_count: %w", err)
			}
			liked = false
		case errors.Is(err, sql.ErrNoRows):
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO likes (id, user_id, idea_id, created_at) VALUES (?, ?, ?, ?)`,
				uuid.NewString(), userID, ideaID, fmtTime(time.Now()),
			); err != nil {
				return fmt.Errorf("storage: insert like: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`UPDATE ideas SET likes_count = likes_count + 1 WHERE id = ?`, ideaID); err != nil {
				return fmt.Errorf("storage: increment likes_count: %w", err)
			}
			liked = true
		default:
			return fmt.Errorf("storage: check like: %w", err)
		}

		return tx.QueryRowContext(ctx,
			`SELECT likes_count FROM ideas WHERE id = ?`, ideaID,
		).Scan(&likesCount)
	})
	if err != nil {
		return false, 0, err
	}
	return liked, likesCount, nil
}

// UpsertRating records or replaces the user's 1-5 rating of an idea, then
// recomputes ratings_count and average_rating from the ratings table inside
// the same transaction. Returns the recomputed aggregate.
func (s *Store) UpsertRating(ctx context.Context, userID, ideaID string, rating int) (avg float64, count int, err error) {
	if rating < 1 || rating > 5 {
		return 0, 0, fmt.Errorf("storage: rating %d out of range", rating)
	}
	err = s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ideaExists(ctx, tx, ideaID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ratings (id, idea_id, user_id, rating, created_at)
			 VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT (user_id, idea_id) DO UPDATE SET rating = excluded.rating`,
			uuid.NewString(), ideaID, userID, rating, fmtTime(time.Now()),
		); err != nil {
			return fmt.Errorf("storage: upsert rating: %w", err)
		}

		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(id), COALESCE(AVG(rating), 0) FROM ratings WHERE idea_id = ?`, ideaID,
		).Scan(&count, &avg); err != nil {
			return fmt.Errorf("storage: aggregate ratings: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE ideas SET ratings_count = ?, average_rating = ? WHERE id = ?`,
			count, avg, ideaID,
		); err != nil {
			return fmt.Errorf("storage: update rating aggregate: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}

// AddComment appends a comment and bumps comments_count atomically.
func (s *Store) AddComment(ctx context.Context, comment model.Comment) (model.Comment, error) {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := ideaExists(ctx, tx, comment.IdeaID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO comments (id, idea_id, user_id, content, created_at) VALUES (?, ?, ?, ?, ?)`,
			comment.ID, comment.IdeaID, comment.UserID, comment.Content, fmtTime(comment.CreatedAt),
		); err != nil {
			return fmt.Errorf("storage: insert comment: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE ideas SET comments_count = comments_count + 1 WHERE id = ?`, comment.IdeaID); err != nil {
			return fmt.Errorf("storage: increment comments_count: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Comment{}, err
	}
	return comment, nil
}

// ideaExists checks the target row inside tx so the whole mutation fails
// with ErrNotFound before any write happens.
func ideaExists(ctx context.Context, tx *sql.Tx, ideaID string) error {
	var id string
	err := tx.QueryRowContext(ctx, `SELECT id FROM ideas WHERE id = ?`, ideaID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: check idea: %w", err)
	}
	return nil
}
