package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/aursland/wholesale-portal/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs and returns an HTTP handler that serves the
// wholesale portal API and, when web is non-nil, the server-rendered
// frontend at the root.
//
// Routes:
//
//	GET  /api           → healthHandler.Index (HTML endpoint listing)
//	GET  /api/health    → healthHandler.Health
//	GET  /api/clients   → clientHandler.List
//	POST /api/login     → authHandler.Login
//	POST /api/logout    → authHandler.Logout   (bearer token required)
//	GET  /api/profile   → clientHandler.Profile (bearer token required)
//	GET  /api/products  → catalogHandler.Products (bearer token required)
//
// Middleware chain for /api (applied in order):
//  1. WithRequestLogging(logger)              — logs incoming requests
//  2. CORS(corsOrigin)                        — cross-origin headers, OPTIONS → 204
//  3. AllowContentType("application/json")    — rejects non-JSON bodies
//  4. BearerAuth(tokens)                      — protected group only
func NewRouter(
	authHandler *AuthHandler,
	clientHandler *ClientHandler,
	catalogHandler *CatalogHandler,
	healthHandler *HealthHandler,
	tokens middleware.TokenVerifier,
	corsOrigin string,
	logger *zap.Logger,
	web http.Handler,
) http.Handler {
	r := chi.NewRouter()

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(corsOrigin))
		// Only allow JSON request bodies
		r.Use(chiMiddleware.AllowContentType("application/json"))

		// Public endpoints
		r.Get("/", healthHandler.Index)
		r.Get("/health", healthHandler.Health)
		r.Get("/clients", clientHandler.List)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid, unrevoked bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.BearerAuth(tokens))
			r.Post("/logout", authHandler.Logout)
			r.Get("/profile", clientHandler.Profile)
			r.Get("/products", catalogHandler.Products)
		})
	})

	// Mount the web frontend at the root
	if web != nil {
		r.Mount("/", web)
	}

	return r
}
