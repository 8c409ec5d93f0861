package model

import "time"

// APIResponse is the standard response envelope for all HTTP API responses.
type APIResponse struct {
	Data any          `json:"data,omitempty"`
	Meta ResponseMeta `json:"meta"`
}

// APIError is the standard error response envelope.
type APIError struct {
	Error ErrorDetail  `json:"error"`
	Meta  ResponseMeta `json:"meta"`
}

// ResponseMeta contains request metadata included in every response.
type ResponseMeta struct {
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorDetail describes an API error.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorCode constants for standard API error codes.
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// RegisterRequest is the request body for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      PublicUser `json:"user"`
}

// CreateIdeaRequest is the request body for POST /api/ideas.
type CreateIdeaRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"` // default true
}

// IdeaListResponse is the response for GET /api/ideas.
type IdeaListResponse struct {
	Ideas  []Idea `json:"ideas"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// IdeaDetailResponse is the response for GET /api/ideas/{id}.
type IdeaDetailResponse struct {
	Idea       Idea          `json:"idea"`
	Comments   []Comment     `json:"comments"`
	Validation *AIValidation `json:"validation"`
}

// AddCommentRequest is the request body for POST /api/ideas/{id}/comments.
type AddCommentRequest struct {
	Content string `json:"content"`
}

// RateIdeaRequest is the request body for POST /api/ideas/{id}/rate.
type RateIdeaRequest struct {
	Rating int `json:"rating"`
}

// RateIdeaResponse returns the recomputed aggregate after an upsert.
type RateIdeaResponse struct {
	AverageRating float64 `json:"average_rating"`
	RatingsCount  int     `json:"ratings_count"`
}

// ToggleLikeResponse reports which branch the toggle took.
type ToggleLikeResponse struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// HealthResponse is the response for GET /api/health.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Database string `json:"database"`
	Uptime   int64  `json:"uptime_seconds"`
}

// VersionResponse is the response for GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}
