// Package web serves the server-rendered frontend of the portal: a login
// form, dashboard, product grid and profile/clients pages. The pages are
// thin presentation over the JSON API; the browser keeps the session
// token in local storage and talks to /api directly.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var assets embed.FS

// pageNames lists every page template. Each pairs with templates/layout.html.
var pageNames = []string{"login", "dashboard", "products", "profile", "clients", "health"}

// Handler renders the frontend pages and serves static assets.
type Handler struct {
	pages map[string]*template.Template
	log   *zap.Logger
}

// New parses the embedded templates and returns a ready Handler.
func New(log *zap.Logger) (*Handler, error) {
	h := &Handler{
		pages: make(map[string]*template.Template, len(pageNames)),
		log:   log,
	}
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(assets, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		h.pages[name] = tmpl
	}
	return h, nil
}

// Routes returns the frontend router: one route per page plus the
// embedded static assets.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.page("login", "Log in"))
	r.Get("/dashboard", h.page("dashboard", "Dashboard"))
	r.Get("/products", h.page("products", "Products"))
	r.Get("/profile", h.page("profile", "Profile"))
	r.Get("/clients", h.page("clients", "Clients"))
	r.Get("/health", h.page("health", "Health"))
	r.Handle("/static/*", http.FileServerFS(assets))
	return r
}

// pageData is the payload passed to every page template.
type pageData struct {
	Title string
	Page  string
}

func (h *Handler) page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{Title: title, Page: name}
		if err := h.pages[name].ExecuteTemplate(w, "layout", data); err != nil {
			h.log.Error("render page", zap.String("page", name), zap.Error(err))
		}
	}
}
