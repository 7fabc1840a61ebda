package http

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aursland/wholesale-portal/internal/middleware"
	"github.com/aursland/wholesale-portal/internal/models"
	"github.com/aursland/wholesale-portal/internal/repository"
)

// ClientHandler handles HTTP requests for client profiles and the
// public client listing.
type ClientHandler struct {
	// ClientService loads profiles from the registry.
	ClientService ClientService
	// Log is the structured logger for server-side error detail.
	Log *zap.Logger
}

// Profile returns the authenticated client's profile.
func (h *ClientHandler) Profile(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientIDFromContext(r.Context())

	profile, err := h.ClientService.GetProfile(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Profile not found")
			return
		}
		h.Log.Error("load profile", zap.String("clientId", clientID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, models.ProfileResponse{
		ClientID:        profile.ID,
		ClientName:      profile.Name,
		PriceMultiplier: profile.PriceMultiplier,
		StockFactor:     profile.StockFactor,
		Description:     profile.Description,
		Summary:         profile.Summary,
	})
}

// List returns every configured client profile, sorted by id. The
// endpoint is public and used for client discovery.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.ClientService.ListProfiles(r.Context())
	if err != nil {
		h.Log.Error("list clients", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, models.ClientsResponse{Clients: profiles})
}
