package server

import (
	"errors"
	"net/http"

	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/internal/storage"
)

// HandleValidateIdea handles POST /api/ideas/{id}/validate.
// Runs the AI collaborator on the idea, persists the report, and marks the
// idea validated. Only the idea's owner may request validation.
func (h *Handlers) HandleValidateIdea(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	ideaID := r.PathValue("id")

	idea, err := h.store.GetIdea(r.Context(), ideaID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to load idea", err)
		return
	}

	if idea.UserID != claims.UserID {
		writeError(w, r, http.StatusForbidden, model.ErrCodeForbidden, "only the idea owner can request validation")
		return
	}

	// The AI call runs outside the transaction; only the finished report is
	// persisted, together with the status change, atomically.
	report := h.validator.Validate(r.Context(), idea)

	saved, err := h.store.SaveValidation(r.Context(), ideaID, report)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to save validation", err)
		return
	}

	h.logger.Info("idea validated",
		"idea_id", ideaID, "user_id", claims.UserID, "overall_score", saved.OverallScore)
	writeJSON(w, r, http.StatusOK, saved)
}
