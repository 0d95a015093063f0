package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/avolkov/filebox/internal/middleware"
	"github.com/avolkov/filebox/internal/models"
)

// UserService defines the user operations required by the HTTP
// handlers.
type UserService interface {
	// Register creates a new user from an email and plaintext password.
	Register(ctx context.Context, email, password string) (*models.User, error)
	// GetByID returns the user behind an authenticated owner id.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// UsersHandler handles HTTP requests for registration and profile
// lookup.
type UsersHandler struct {
	// Users performs the underlying user operations.
	Users UserService
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Create handles POST /users. It expects a JSON body with "email" and
// "password" and responds with the created user's id and email.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.Users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, userResponse{ID: user.ID, Email: user.Email})
}

// Me handles GET /users/me, returning the authenticated user's id and
// email.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	user, err := h.Users.GetByID(r.Context(), ownerID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}
