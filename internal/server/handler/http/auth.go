package http

import (
	"context"
	"net/http"

	"github.com/avolkov/filebox/internal/middleware"
)

// AuthService defines the session operations required by the HTTP
// handlers.
type AuthService interface {
	// Login verifies credentials and issues a session token.
	Login(ctx context.Context, email, password string) (string, error)
	// Logout revokes a session token.
	Logout(ctx context.Context, tok string) error
}

// AuthHandler handles HTTP requests for session establishment and
// teardown.
type AuthHandler struct {
	// Auth performs the underlying session operations.
	Auth AuthService
}

// Connect handles GET /connect. Credentials arrive as a standard Basic
// authorization header carrying email:password. A malformed header and
// wrong credentials both answer 401 so the caller learns nothing about
// which one failed.
func (h *AuthHandler) Connect(w http.ResponseWriter, r *http.Request) {
	email, password, ok := r.BasicAuth()
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	tok, err := h.Auth.Login(r.Context(), email, password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"token": tok})
}

// Disconnect handles GET /disconnect, revoking the presented token.
// Responds 204 on success and 401 for any token that does not resolve,
// including one revoked moments earlier.
func (h *AuthHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	tok := r.Header.Get(middleware.TokenHeader)

	if err := h.Auth.Logout(r.Context(), tok); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
