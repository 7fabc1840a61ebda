// Package repository provides persistence implementations backing the
// client registry, the catalog store and the token revocation store.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/aursland/wholesale-portal/internal/models"
)

// ErrNotFound is returned when a client profile does not exist.
var ErrNotFound = errors.New("client not found")

const (
	defaultDescription = "Wholesale client configuration for product pricing and stock adjustments."
	defaultSummary     = "Registered wholesale client."
)

// profileFile mirrors the on-disk profile layout. Pointer fields
// distinguish "absent" from "zero": absent multipliers default to 1.
type profileFile struct {
	Name            string             `json:"name"`
	PriceMultiplier *float64           `json:"priceMultiplier"`
	StockFactor     *float64           `json:"stockFactor"`
	StockCap        *int               `json:"stockCap"`
	StockOverrides  map[string]int     `json:"stockOverrides"`
	PriceOverrides  map[string]float64 `json:"priceOverrides"`
	Description     string             `json:"description"`
	Summary         string             `json:"summary"`
}

// FileClientRepository resolves login codes and loads client profiles
// from per-client JSON files under <dir>/clients. Files are re-read on
// every call so configuration edits take effect without a restart.
type FileClientRepository struct {
	dir   string
	codes map[string]string
}

// NewFileClientRepository creates a repository rooted at dir. codes maps
// opaque login codes to client identifiers.
func NewFileClientRepository(dir string, codes map[string]string) *FileClientRepository {
	if codes == nil {
		codes = make(map[string]string)
	}
	return &FileClientRepository{dir: dir, codes: codes}
}

// ResolveClientID maps a login code to a client identifier. The lookup is
// exact match only; an unknown code returns false, never an error.
func (r *FileClientRepository) ResolveClientID(code string) (string, bool) {
	clientID, ok := r.codes[code]
	return clientID, ok
}

// GetProfile loads the profile for clientID. Returns ErrNotFound if no
// profile file exists for that client.
func (r *FileClientRepository) GetProfile(ctx context.Context, clientID string) (*models.ClientProfile, error) {
	if !validClientID(clientID) {
		return nil, ErrNotFound
	}
	path := filepath.Join(r.dir, "clients", clientID+".json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", clientID, err)
	}
	return parseProfile(clientID, data)
}

// ListProfiles loads every profile under <dir>/clients, sorted by id.
func (r *FileClientRepository) ListProfiles(ctx context.Context) ([]models.ClientProfile, error) {
	entries, err := os.ReadDir(filepath.Join(r.dir, "clients"))
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	profiles := make([]models.ClientProfile, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id := strings.TrimSuffix(name, ".json")
		profile, err := r.GetProfile(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load profile %s: %w", id, err)
		}
		profiles = append(profiles, *profile)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })
	return profiles, nil
}

func parseProfile(clientID string, data []byte) (*models.ClientProfile, error) {
	var file profileFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", clientID, err)
	}

	profile := &models.ClientProfile{
		ID:              clientID,
		Name:            file.Name,
		PriceMultiplier: 1,
		StockFactor:     1,
		StockCap:        file.StockCap,
		StockOverrides:  file.StockOverrides,
		PriceOverrides:  file.PriceOverrides,
		Description:     file.Description,
		Summary:         file.Summary,
	}
	if file.PriceMultiplier != nil {
		profile.PriceMultiplier = *file.PriceMultiplier
	}
	if file.StockFactor != nil {
		profile.StockFactor = *file.StockFactor
	}
	// Factors are never allowed to go negative.
	profile.PriceMultiplier = max(profile.PriceMultiplier, 0)
	profile.StockFactor = max(profile.StockFactor, 0)

	if profile.Name == "" {
		profile.Name = displayName(clientID)
	}
	if profile.Description == "" {
		profile.Description = defaultDescription
	}
	if profile.Summary == "" {
		profile.Summary = defaultSummary
	}
	return profile, nil
}

// displayName derives a human-readable name from a client identifier,
// splitting camelCase boundaries and capitalizing the first letter:
// "clientA" becomes "Client A".
func displayName(clientID string) string {
	var b strings.Builder
	for i, r := range clientID {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validClientID rejects identifiers that could escape the config
// directory. Client ids are letters, digits, '-' and '_' only.
func validClientID(id string) bool {
	if id == "" {
		return false
	}
	for _, r := range id {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
