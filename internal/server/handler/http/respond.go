// Package http provides the HTTP handlers and routing for the wholesale
// portal API.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/aursland/wholesale-portal/internal/models"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes the standard error envelope. Internal detail never
// reaches the client; callers log it separately.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
