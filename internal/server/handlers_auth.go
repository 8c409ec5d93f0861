package server

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/innov8-labs/innov8/internal/auth"
	"github.com/innov8-labs/innov8/internal/model"
	"github.com/innov8-labs/innov8/internal/storage"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 8

// HandleRegister handles POST /api/auth/register.
func (h *Handlers) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if !emailRegex.MatchString(req.Email) {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "invalid email address")
		return
	}
	if req.Name == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "name is required")
		return
	}
	if len(req.Password) < minPasswordLen {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.writeInternalError(w, r, "failed to hash password", err)
		return
	}

	user, err := h.store.CreateUser(r.Context(), model.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if errors.Is(err, storage.ErrDuplicate) {
		writeError(w, r, http.StatusConflict, model.ErrCodeConflict, "email already registered")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to create user", err)
		return
	}

	token, expiresAt, err := h.jwtMgr.IssueToken(user)
	if err != nil {
		h.writeInternalError(w, r, "failed to issue token", err)
		return
	}

	h.logger.Info("user registered", "user_id", user.ID)
	writeJSON(w, r, http.StatusCreated, model.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	})
}

// HandleLogin handles POST /api/auth/login.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req, h.maxRequestBodyBytes); err != nil {
		handleDecodeError(w, r, err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidInput, "email and password are required")
		return
	}

	user, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, storage.ErrNotFound) {
		// Burn the same hashing cost as a real check so timing does not
		// reveal whether the email is registered.
		auth.DummyVerify()
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to look up user", err)
		return
	}

	valid, err := auth.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeUnauthorized, "invalid credentials")
		return
	}

	token, expiresAt, err := h.jwtMgr.IssueToken(user)
	if err != nil {
		h.writeInternalError(w, r, "failed to issue token", err)
		return
	}

	writeJSON(w, r, http.StatusOK, model.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
	})
}

// HandleVerify handles GET /api/auth/verify. The token was already checked
// by the middleware; this confirms the account still exists and echoes it.
func (h *Handlers) HandleVerify(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	user, err := h.store.GetUserByID(r.Context(), claims.UserID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, model.ErrCodeNotFound, "user not found")
		return
	}
	if err != nil {
		h.writeInternalError(w, r, "failed to load user", err)
		return
	}

	writeJSON(w, r, http.StatusOK, user)
}
