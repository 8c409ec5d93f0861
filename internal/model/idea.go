package model

import (
	"fmt"
	"strings"
	"time"
)

// IdeaStatus is the lifecycle stage of an idea.
type IdeaStatus string

const (
	StatusDraft     IdeaStatus = "draft"
	StatusFeedback  IdeaStatus = "feedback"
	StatusValidated IdeaStatus = "validated"
	StatusPrototype IdeaStatus = "prototype"
)

// ValidStatus reports whether s is one of the known lifecycle stages.
func ValidStatus(s IdeaStatus) bool {
	switch s {
	case StatusDraft, StatusFeedback, StatusValidated, StatusPrototype:
		return true
	}
	return false
}

// Idea is a user-submitted proposal. LikesCount, CommentsCount, RatingsCount
// and AverageRating are denormalized from the likes/comments/ratings tables;
// every mutation of those tables updates the counters in the same transaction.
type Idea struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Status        IdeaStatus `json:"status"`
	Tags          []string   `json:"tags"`
	IsPublic      bool       `json:"is_public"`
	LikesCount    int        `json:"likes_count"`
	CommentsCount int        `json:"comments_count"`
	RatingsCount  int        `json:"ratings_count"`
	AverageRating float64    `json:"average_rating"`
	AuthorName    string     `json:"author_name,omitempty"`
	AuthorAvatar  *string    `json:"author_avatar,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Comment is an append-only remark on an idea. AuthorName is denormalized
// from the authenticated identity at write time and from a join at read time.
type Comment struct {
	ID         string    `json:"id"`
	IdeaID     string    `json:"idea_id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Field length limits for idea submissions. These cap what flows into the
// SQLite TEXT columns and the validation prompt.
const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 16 * 1024 // 16 KB
	MaxCategoryLen    = 64
	MaxTagLen         = 64
	MaxTags           = 16
	MaxCommentLen     = 8 * 1024 // 8 KB
)

// ValidateIdeaInput checks required fields and length limits before any
// side effect.
func ValidateIdeaInput(title, description, category string, tags []string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxTitleLen {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxTitleLen)
	}
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description is required")
	}
	if len(description) > MaxDescriptionLen {
		return fmt.Errorf("description exceeds maximum length of %d bytes", MaxDescriptionLen)
	}
	if strings.TrimSpace(category) == "" {
		return fmt.Errorf("category is required")
	}
	if len(category) > MaxCategoryLen {
		return fmt.Errorf("category exceeds maximum length of %d characters", MaxCategoryLen)
	}
	if len(tags) > MaxTags {
		return fmt.Errorf("at most %d tags allowed", MaxTags)
	}
	for i, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("tags[%d] is empty", i)
		}
		if len(tag) > MaxTagLen {
			return fmt.Errorf("tags[%d] exceeds maximum length of %d characters", i, MaxTagLen)
		}
		if strings.Contains(tag, ",") {
			return fmt.Errorf("tags[%d] must not contain commas", i)
		}
	}
	return nil
}
