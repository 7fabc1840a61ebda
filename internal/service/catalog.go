package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/aursland/wholesale-portal/internal/models"
)

// ClientRepository defines the registry operations required by the
// catalog and client services.
type ClientRepository interface {
	// ResolveClientID maps a login code to a client id; exact match only.
	ResolveClientID(code string) (string, bool)
	// GetProfile loads the profile for a client id.
	GetProfile(ctx context.Context, clientID string) (*models.ClientProfile, error)
	// ListProfiles returns every known profile, sorted by id.
	ListProfiles(ctx context.Context) ([]models.ClientProfile, error)
}

// CatalogRepository defines the catalog store operations required by the
// catalog service.
type CatalogRepository interface {
	// LoadCatalog returns the raw catalog rows for a client.
	LoadCatalog(ctx context.Context, clientID string) ([]models.CatalogRow, error)
}

// CatalogService produces client-specific product catalogs by applying a
// profile's pricing and stock rules to the raw catalog.
type CatalogService struct {
	clients ClientRepository
	catalog CatalogRepository
}

// NewCatalogService constructs a CatalogService over the given repositories.
func NewCatalogService(clients ClientRepository, catalog CatalogRepository) *CatalogService {
	return &CatalogService{clients: clients, catalog: catalog}
}

// ProductsFor loads the profile and raw catalog for clientID and returns
// the adjusted products together with the client display name.
func (s *CatalogService) ProductsFor(ctx context.Context, clientID string) ([]models.Product, string, error) {
	profile, err := s.clients.GetProfile(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	rows, err := s.catalog.LoadCatalog(ctx, clientID)
	if err != nil {
		return nil, "", err
	}
	return ComputeCatalog(profile, rows), profile.Name, nil
}

// ComputeCatalog applies a profile's pricing and stock rules to raw
// catalog rows. The function is pure: identical inputs always yield
// identical outputs.
//
// Per row:
//   - price: the per-code override if present, else wholesale price times
//     the profile multiplier, rounded half away from zero to 2 decimals.
//   - stock: the per-code override if present, else the available stock
//     capped at the profile's stock cap if one is set, else available
//     stock times the stock factor rounded to the nearest integer.
//     Stock never goes below zero.
func ComputeCatalog(profile *models.ClientProfile, rows []models.CatalogRow) []models.Product {
	multiplier := decimal.NewFromFloat(max(profile.PriceMultiplier, 0))
	products := make([]models.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, models.Product{
			ID:          row.Code,
			Code:        row.Code,
			Name:        row.Name,
			Color:       row.Color,
			Price:       adjustedPrice(profile, multiplier, row),
			RetailPrice: float64(row.RetailPrice),
			Stock:       adjustedStock(profile, row),
		})
	}
	return products
}

func adjustedPrice(profile *models.ClientProfile, multiplier decimal.Decimal, row models.CatalogRow) float64 {
	if override, ok := profile.PriceOverrides[row.Code]; ok {
		return round2(decimal.NewFromFloat(override))
	}
	price := decimal.NewFromFloat(float64(row.WholesalePrice)).Mul(multiplier)
	return round2(price)
}

func adjustedStock(profile *models.ClientProfile, row models.CatalogRow) int {
	if override, ok := profile.StockOverrides[row.Code]; ok {
		return max(override, 0)
	}
	stock := decimal.NewFromFloat(float64(row.AvailableStock))
	if profile.StockCap != nil {
		limit := int64(*profile.StockCap)
		return max(int(min(stock.Round(0).IntPart(), limit)), 0)
	}
	factor := decimal.NewFromFloat(max(profile.StockFactor, 0))
	return max(int(stock.Mul(factor).Round(0).IntPart()), 0)
}

// round2 rounds to 2 decimal places, half away from zero, as expected
// for currency values.
func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
