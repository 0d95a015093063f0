package http

import (
	"context"
	"net/http"

	"github.com/avolkov/filebox/internal/service"
)

// AppService defines the status and stats operations required by the
// HTTP handlers.
type AppService interface {
	// Status reports liveness of the token store and the database.
	Status(ctx context.Context) service.Health
	// Stats returns the totals of users and entries.
	Stats(ctx context.Context) (service.Stats, error)
}

// AppHandler handles the unauthenticated status and stats endpoints.
type AppHandler struct {
	// App performs the underlying status and stats lookups.
	App AppService
}

// Status handles GET /status.
func (h *AppHandler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.App.Status(r.Context()))
}

// Stats handles GET /stats.
func (h *AppHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.App.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
