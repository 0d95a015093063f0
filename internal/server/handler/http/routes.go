package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/filebox/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the file store API.
//
// Routes:
//
//	GET  /status      → appHandler.Status
//	GET  /stats       → appHandler.Stats
//	POST /users       → usersHandler.Create
//	GET  /connect     → authHandler.Connect      (Basic credentials)
//	GET  /disconnect  → authHandler.Disconnect   (protected)
//	GET  /users/me    → usersHandler.Me          (protected)
//	POST /files       → filesHandler.Upload      (protected)
//	GET  /files/{id}  → filesHandler.GetByID     (protected)
//	GET  /files       → filesHandler.List        (protected)
//
// Protected routes sit behind middleware.TokenAuth, which resolves the
// X-Token header before any handler runs.
func NewRouter(
	appHandler *AppHandler,
	usersHandler *UsersHandler,
	authHandler *AuthHandler,
	filesHandler *FilesHandler,
	resolver middleware.TokenResolver,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Public endpoints
	r.Get("/status", appHandler.Status)
	r.Get("/stats", appHandler.Stats)
	r.Post("/users", usersHandler.Create)
	r.Get("/connect", authHandler.Connect)

	// Protected group: requires a valid session token
	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(resolver))

		r.Get("/disconnect", authHandler.Disconnect)
		r.Get("/users/me", usersHandler.Me)
		r.Post("/files", filesHandler.Upload)
		r.Get("/files/{id}", filesHandler.GetByID)
		r.Get("/files", filesHandler.List)
	})

	return r
}
