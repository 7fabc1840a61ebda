package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aursland/wholesale-portal/internal/models"
)

// HealthHandler serves the health probe and the HTML index page.
type HealthHandler struct {
	// Version is the build version reported by the health probe.
	Version string
	// Started is the process start time used to compute uptime.
	Started time.Time
}

// Health reports service status, build version, server time and uptime.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Version:   h.Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    fmt.Sprintf("%.2f", time.Since(h.Started).Seconds()),
	})
}

const indexPage = `<html>
  <head>
    <title>Client Store API</title>
    <style>
      body { font-family: Arial, sans-serif; padding: 40px; background: #fafafa; }
      h1 { color: #333; }
      a { display: block; margin: 6px 0; color: #0066cc; }
    </style>
  </head>
  <body>
    <h1>Client Store API is Running</h1>
    <p>This API powers the storefront experience for different clients.</p>

    <h3>Available Endpoints</h3>
    <a href="/api/products">/api/products - Get client-specific product catalog</a>
    <a href="/api/profile">/api/profile - Get client profile information</a>
    <a href="/api/clients">/api/clients - List all available clients</a>
    <a href="/api/health">/api/health - System health check</a>

    <h3>Authentication Endpoints</h3>
    <p style="margin-left: 20px; color: #666;">
      POST /api/login - Client authentication<br>
      POST /api/logout - Session termination
    </p>
  </body>
</html>
`

// Index serves a plain HTML page listing the API endpoints.
func (h *HealthHandler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexPage))
}
