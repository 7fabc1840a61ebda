// Package models defines the core data structures for clients, catalogs
// and API responses.
package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ClientProfile holds the pricing and stock rules for a wholesale client.
// Profiles are loaded fresh from configuration on every request and are
// never mutated after loading.
type ClientProfile struct {
	// ID is the internal client identifier, derived from the config file name.
	ID string `json:"id"`
	// Name is the display name shown to the client, populated at load time.
	Name string `json:"name"`
	// PriceMultiplier scales wholesale prices. 1 means no adjustment.
	PriceMultiplier float64 `json:"priceMultiplier"`
	// StockFactor scales available stock. 1 means full stock access.
	StockFactor float64 `json:"stockFactor"`
	// StockCap, when set, limits the stock shown for every product.
	StockCap *int `json:"stockCap,omitempty"`
	// StockOverrides maps product codes to absolute stock values.
	// An override takes precedence over both StockCap and StockFactor.
	StockOverrides map[string]int `json:"stockOverrides,omitempty"`
	// PriceOverrides maps product codes to absolute prices, taking
	// precedence over PriceMultiplier.
	PriceOverrides map[string]float64 `json:"priceOverrides,omitempty"`
	// Description is a short text describing the client relationship.
	Description string `json:"description"`
	// Summary is an optional one-line partnership summary.
	Summary string `json:"summary,omitempty"`
}

// Number is a float64 that unmarshals from either a JSON number or a
// numeric string. Catalog files are exported from spreadsheets, which
// emit quantities and prices inconsistently as one or the other.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*n = 0
		return nil
	}
	if len(data) > 1 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*n = Number(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}

// CatalogRow is a raw product record as it appears in a catalog file.
// Field names match the spreadsheet export column headers.
type CatalogRow struct {
	Code           string  `json:"Product code"`
	Name           string  `json:"Product Name"`
	Color          *string `json:"Color"`
	WholesalePrice Number  `json:"Wholesale price"`
	RetailPrice    Number  `json:"Retail price"`
	AvailableStock Number  `json:"Available stock"`
}

// Product is a catalog row adjusted for a specific client profile.
// Products are computed per request and never persisted.
type Product struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Color       *string `json:"color"`
	Price       float64 `json:"price"`
	RetailPrice float64 `json:"retailPrice"`
	Stock       int     `json:"stock"`
}

// LoginResponse is returned by POST /api/login.
type LoginResponse struct {
	Token      string `json:"token"`
	ClientID   string `json:"clientId"`
	ClientName string `json:"clientName"`
}

// LogoutResponse is returned by POST /api/logout.
type LogoutResponse struct {
	Message string `json:"message"`
}

// ProfileResponse is returned by GET /api/profile.
type ProfileResponse struct {
	ClientID        string  `json:"clientId"`
	ClientName      string  `json:"clientName"`
	PriceMultiplier float64 `json:"priceMultiplier"`
	StockFactor     float64 `json:"stockFactor"`
	Description     string  `json:"description"`
	Summary         string  `json:"summary"`
}

// ClientsResponse is returned by GET /api/clients.
type ClientsResponse struct {
	Clients []ClientProfile `json:"clients"`
}

// ProductsResponse is returned by GET /api/products.
type ProductsResponse struct {
	Products   []Product `json:"products"`
	ClientName string    `json:"clientName"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	Uptime    string `json:"uptime"`
}

// ErrorResponse is the envelope used for every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
