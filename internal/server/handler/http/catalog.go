package http

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/aursland/wholesale-portal/internal/middleware"
	"github.com/aursland/wholesale-portal/internal/models"
	"github.com/aursland/wholesale-portal/internal/repository"
)

// CatalogService defines the catalog operations required by the HTTP
// handlers.
type CatalogService interface {
	// ProductsFor returns the adjusted products and display name for a client.
	ProductsFor(ctx context.Context, clientID string) ([]models.Product, string, error)
}

// CatalogHandler handles HTTP requests for the client-specific product
// catalog.
type CatalogHandler struct {
	// CatalogService computes the adjusted catalog.
	CatalogService CatalogService
	// Log is the structured logger for server-side error detail.
	Log *zap.Logger
}

// Products returns the authenticated client's product catalog with
// prices and stock adjusted according to the client profile.
func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	clientID := middleware.GetClientIDFromContext(r.Context())

	products, clientName, err := h.CatalogService.ProductsFor(r.Context(), clientID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Client not found")
		case errors.Is(err, repository.ErrMissingCatalog):
			h.Log.Error("catalog source missing", zap.String("clientId", clientID))
			writeError(w, http.StatusInternalServerError, "Server error")
		default:
			h.Log.Error("load products", zap.String("clientId", clientID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, models.ProductsResponse{
		Products:   products,
		ClientName: clientName,
	})
}
