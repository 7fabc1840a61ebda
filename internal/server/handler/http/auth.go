package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aursland/wholesale-portal/internal/middleware"
	"github.com/aursland/wholesale-portal/internal/models"
	"github.com/aursland/wholesale-portal/internal/repository"
	"github.com/aursland/wholesale-portal/internal/service"
)

// TokenService defines the session token operations required by the
// HTTP handlers.
type TokenService interface {
	// Issue creates a signed token for the client id.
	Issue(ctx context.Context, clientID string) (string, error)
	// Revoke invalidates the token ahead of its natural expiry.
	Revoke(ctx context.Context, token string) error
}

// ClientService defines the registry operations required by the HTTP
// handlers.
type ClientService interface {
	// ResolveClientID maps a login code to a client id.
	ResolveClientID(code string) (string, bool)
	// GetProfile loads the profile for a client id.
	GetProfile(ctx context.Context, clientID string) (*models.ClientProfile, error)
	// ListProfiles returns every known profile, sorted by id.
	ListProfiles(ctx context.Context) ([]models.ClientProfile, error)
}

// AuthHandler handles HTTP requests for login and logout.
type AuthHandler struct {
	// TokenService performs token issuance and revocation.
	TokenService TokenService
	// ClientService resolves login codes and loads profiles.
	ClientService ClientService
	// Log is the structured logger for server-side error detail.
	Log *zap.Logger
}

// LoginRequest represents the JSON payload for client login.
type LoginRequest struct {
	// Code is the opaque login code identifying the client.
	Code string `json:"code"`
}

// Login handles client login requests.
// It expects a JSON body with a non-empty "code" field, resolves the
// code to a client id, and returns a signed session token together with
// the client id and display name.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Please enter an access code.")
		return
	}

	clientID, ok := h.ClientService.ResolveClientID(req.Code)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid access code. Try again.")
		return
	}

	profile, err := h.ClientService.GetProfile(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// A code mapped to a client with no profile file is a
			// configuration problem, not a client error.
			h.Log.Error("profile missing for known client", zap.String("clientId", clientID))
			writeError(w, http.StatusInternalServerError, "Client profile not found.")
			return
		}
		h.Log.Error("load profile", zap.String("clientId", clientID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}

	token, err := h.TokenService.Issue(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, service.ErrMissingSecret) {
			h.Log.Error("signing secret missing")
			writeError(w, http.StatusInternalServerError, "Server misconfiguration")
			return
		}
		h.Log.Error("issue token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Token:      token,
		ClientID:   clientID,
		ClientName: profile.Name,
	})
}

// Logout handles session termination. The bearer auth middleware has
// already verified the token; Logout adds it to the revocation store so
// it cannot be used again before its natural expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.GetTokenFromContext(r.Context())
	if token == "" {
		writeError(w, http.StatusBadRequest, "Missing token")
		return
	}

	if err := h.TokenService.Revoke(r.Context(), token); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		h.Log.Error("revoke token", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Unexpected server error.")
		return
	}

	h.Log.Info("token revoked",
		zap.String("clientId", middleware.GetClientIDFromContext(r.Context())))

	writeJSON(w, http.StatusOK, models.LogoutResponse{Message: "Logout successful"})
}
