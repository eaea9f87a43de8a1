package handler

import (
	"errors"
	"net/http"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/model"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Identity model.Identity `json:"identity"`
	Token    string         `json:"token"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !readJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	id, err := h.gate.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		middleware.RecordAuthAttempt(false)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			// same message whichever field was wrong
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	tok, err := auth.MakeToken(*id, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	middleware.RecordAuthAttempt(true)
	writeJSON(w, http.StatusOK, loginResponse{Identity: *id, Token: tok})
}

// Logout clears the persisted session unconditionally, no confirmation.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Logout(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session reports the persisted identity, letting a client restore its login
// state after a reload.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	id, ok := h.store.Identity(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"identity": id})
}
