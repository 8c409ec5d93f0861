package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/internal/storage"
)

// HandleAddComment handles POST /api/ideas/{id}/comments.
func (h *Handlers) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	ideaID := r.PathValue("id")

	var req model.AddCommentRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "content is required")
		return
	}
	if len(content) > model.MaxCommentLen {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "comment is too long")
		return
	}

	comment, err := h.store.AddComment(r.Context(), model.Comment{
		IdeaID:  ideaID,
		UserID:  claims.UserID,
		Content: content,
	})
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to add comment", err)
		return
	}

	// The author's name comes straight from the token rather than a re-read.
	comment.AuthorName = claims.Name
	writeJSON(w, r, http.StatusCreated, comment)
}

// HandleRateIdea handles POST /api/ideas/{id}/rate.
// One rating per user per idea; rating again replaces the previous value.
func (h *Handlers) HandleRateIdea(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	ideaID := r.PathValue("id")

	var req model.RateIdeaRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "rating must be between 1 and 5")
		return
	}

	avg, count, err := h.store.UpsertRating(r.Context(), claims.UserID, ideaID, req.Rating)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to record rating", err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.RateIdeaResponse{
		AverageRating: avg,
		RatingsCount:  count,
	})
}

// HandleToggleLike handles POST /api/ideas/{id}/like.
func (h *Handlers) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	ideaID := r.PathValue("id")

	liked, count, err := h.store.ToggleLike(r.Context(), claims.UserID, ideaID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to toggle like", err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.ToggleLikeResponse{
		Liked:      liked,
		LikesCount: count,
	})
}
