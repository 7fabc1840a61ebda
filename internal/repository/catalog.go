package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aursland/wholesale-portal/internal/models"
)

// ErrMissingCatalog is returned when neither a client-specific catalog
// nor the shared default catalog exists. Callers must map this to a
// server misconfiguration error, not a client error.
var ErrMissingCatalog = errors.New("catalog source missing")

// FileCatalogRepository loads raw product catalogs from JSON files under
// <dir>/catalogs. A client without its own catalog falls back to
// catalogs/default.json.
type FileCatalogRepository struct {
	dir string
}

// NewFileCatalogRepository creates a catalog repository rooted at dir.
func NewFileCatalogRepository(dir string) *FileCatalogRepository {
	return &FileCatalogRepository{dir: dir}
}

// LoadCatalog returns the raw catalog rows for clientID, reading the
// file fresh on every call.
func (r *FileCatalogRepository) LoadCatalog(ctx context.Context, clientID string) ([]models.CatalogRow, error) {
	paths := []string{filepath.Join(r.dir, "catalogs", "default.json")}
	if validClientID(clientID) {
		paths = append([]string{filepath.Join(r.dir, "catalogs", clientID+".json")}, paths...)
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var rows []models.CatalogRow
		if err := json.Unmarshal(data, &rows); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		return rows, nil
	}
	return nil, ErrMissingCatalog
}
