// Package http provides the HTTP handlers and routing for the file
// store API.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avolkov/filebox/internal/service"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// statusMessages maps service sentinels to the wire-level status and
// error string each one surfaces as.
var statusMessages = []struct {
	err     error
	status  int
	message string
}{
	{service.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{service.ErrMissingEmail, http.StatusBadRequest, "Missing email"},
	{service.ErrMissingPassword, http.StatusBadRequest, "Missing password"},
	{service.ErrAlreadyExists, http.StatusBadRequest, "Already exist"},
	{service.ErrMissingName, http.StatusBadRequest, "Missing name"},
	{service.ErrMissingType, http.StatusBadRequest, "Missing type"},
	{service.ErrMissingData, http.StatusBadRequest, "Missing data"},
	{service.ErrInvalidParent, http.StatusBadRequest, "Parent not found"},
	{service.ErrParentNotFolder, http.StatusBadRequest, "Parent is not a folder"},
	{service.ErrNotFound, http.StatusNotFound, "Not found"},
}

// respondServiceError writes the response for err. Unrecognized errors
// collapse to a generic 500 so store-level detail never leaks to the
// caller.
func respondServiceError(w http.ResponseWriter, err error) {
	for _, m := range statusMessages {
		if errors.Is(err, m.err) {
			respondError(w, m.status, m.message)
			return
		}
	}
	respondError(w, http.StatusInternalServerError, "Internal Server Error")
}
