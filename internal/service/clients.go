package service

import (
	"context"

	"github.com/aursland/wholesale-portal/internal/models"
)

// ClientService exposes registry operations: login code resolution and
// profile lookup.
type ClientService struct {
	repo ClientRepository
}

// NewClientService constructs a ClientService using the provided repository.
func NewClientService(repo ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

// ResolveClientID maps a login code to a client id.
func (s *ClientService) ResolveClientID(code string) (string, bool) {
	return s.repo.ResolveClientID(code)
}

// GetProfile loads the profile for the given client id.
func (s *ClientService) GetProfile(ctx context.Context, clientID string) (*models.ClientProfile, error) {
	return s.repo.GetProfile(ctx, clientID)
}

// ListProfiles returns every known client profile, sorted by id.
func (s *ClientService) ListProfiles(ctx context.Context) ([]models.ClientProfile, error) {
	return s.repo.ListProfiles(ctx)
}
