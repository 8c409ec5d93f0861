package server

import (
	"errors"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/internal/storage"
)

// HandleCreateIdea handles POST /api/ideas.
func (h *Handlers) HandleCreateIdea(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	var req model.CreateIdeaRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.TrimSpace(req.Category)
	if err := model.ValidateIdeaInput(req.Title, req.Description, req.Category, req.Tags); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, err.Error())
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	idea, err := h.store.CreateIdea(r.Context(), model.Idea{
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		IsPublic:    isPublic,
	})
	if err != nil {
		h.writeInternalError(w, r, "failed to create idea", err)
		return
	}

	idea.AuthorName = claims.Name
	h.logger.Info("idea created", "idea_id", idea.ID, "user_id", claims.UserID)
	writeJSON(w, r, http.StatusCreated, idea)
}

// HandleListIdeas handles GET /api/ideas.
// Public ideas only; supports category, status, search, limit and offset.
func (h *Handlers) HandleListIdeas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if s := q.Get("status"); s != "" && !model.ValidStatus(model.IdeaStatus(s)) {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "unknown status: "+s)
		return
	}

	filter := storage.IdeaFilter{
		Category: q.Get("category"),
		Status:   q.Get("status"),
		Search:   q.Get("search"),
		Limit:    queryLimit(r, 20),
		Offset:   queryOffset(r),
	}

	ideas, total, err := h.store.ListIdeas(r.Context(), filter)
	if err != nil {
		h.writeInternalError(w, r, "failed to list ideas", err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.IdeaListResponse{
		Ideas:  ideas,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// HandleMyIdeas handles GET /api/ideas/mine.
func (h *Handlers) HandleMyIdeas(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	ideas, err := h.store.ListIdeasByUser(r.Context(), claims.UserID)
	if err != nil {
		h.writeInternalError(w, r, "failed to list ideas", err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.IdeaListResponse{
		Ideas:  ideas,
		Total:  len(ideas),
		Limit:  len(ideas),
		Offset: 0,
	})
}

// HandleGetIdea handles GET /api/ideas/{id}.
// Private ideas are visible only to their owner. Comments and the latest
// validation are fetched concurrently once visibility is settled.
func (h *Handlers) HandleGetIdea(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	claims := ClaimsFromContext(r.Context())

	idea, err := h.store.GetIdea(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to load idea", err)
		return
	}

	if !idea.IsPublic && (claims == nil || claims.UserID != idea.UserID) {
		// Hide the existence of private ideas from non-owners.
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "idea not found")
		return
	}

	var (
		comments  []model.Comment
		latest    model.AIValidation
		hasReport bool
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		comments, err = h.store.ListComments(ctx, id)
		return err
	})
	g.Go(func() error {
		v, err := h.store.LatestValidation(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		latest, hasReport = v, true
		return nil
	})
	if err := g.Wait(); err != nil {
		h.writeInternalError(w, r, "failed to load idea detail", err)
		return
	}

	resp := model.IdeaDetailResponse{
		Idea:     idea,
		Comments: comments,
	}
	if hasReport {
		resp.Validation = &latest
	}
	writeJSON(w, r, http.StatusOK, resp)
}
