package http

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avolkov/filebox/internal/middleware"
	"github.com/avolkov/filebox/internal/models"
	"github.com/avolkov/filebox/internal/service"
)

// FileService defines the file-store operations required by the HTTP
// handlers.
type FileService interface {
	// Upload creates a folder, file, or image entry.
	Upload(ctx context.Context, ownerID string, req service.UploadRequest) (*models.Entry, error)
	// Get fetches a single entry visible to the owner.
	Get(ctx context.Context, ownerID, id string) (*models.Entry, error)
	// List pages through the owner's entries under a parent.
	List(ctx context.Context, ownerID, parentID string, page int) ([]models.Entry, error)
}

// FilesHandler handles HTTP requests for uploading, fetching, and
// listing entries.
type FilesHandler struct {
	// Files performs the underlying file-store operations.
	Files FileService
}

// uploadRequest is the JSON payload for POST /files. ParentID is a
// json.RawMessage because clients send either the number 0 or an entry
// id string. Data carries the payload base64-encoded; a nil pointer
// means the field was absent.
type uploadRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	ParentID json.RawMessage `json:"parentId"`
	IsPublic bool            `json:"isPublic"`
	Data     *string         `json:"data"`
}

// parseParentID normalizes the wire form of a parent reference. Absent
// and 0 both mean the root.
func parseParentID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return models.RootParentID
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return models.RootParentID
		}
		return s
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatInt(n, 10)
	}
	return string(raw)
}

// Upload handles POST /files, creating a folder, file, or image for
// the authenticated owner.
func (h *FilesHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upload := service.UploadRequest{
		Name:     req.Name,
		Kind:     models.EntryKind(req.Type),
		ParentID: parseParentID(req.ParentID),
		IsPublic: req.IsPublic,
	}
	if req.Data != nil {
		payload, err := base64.StdEncoding.DecodeString(*req.Data)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Missing data")
			return
		}
		upload.Data = payload
		upload.HasData = true
	}

	entry, err := h.Files.Upload(r.Context(), ownerID, upload)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

// GetByID handles GET /files/{id}. Entries that do not exist and
// entries the owner may not read both answer 404.
func (h *FilesHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())
	id := chi.URLParam(r, "id")

	entry, err := h.Files.Get(r.Context(), ownerID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

// List handles GET /files, returning one page of the owner's entries
// under the requested parent. parentId defaults to the root and page
// to 0; an out-of-range page is an empty array, not an error.
func (h *FilesHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserIDFromContext(r.Context())

	parentID := r.URL.Query().Get("parentId")
	page := 0
	if p := r.URL.Query().Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			page = n
		}
	}

	entries, err := h.Files.List(r.Context(), ownerID, parentID, page)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
