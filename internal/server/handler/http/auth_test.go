package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/aursland/wholesale-portal/internal/middleware"
	"github.com/aursland/wholesale-portal/internal/models"
	"github.com/aursland/wholesale-portal/internal/repository"
	"github.com/aursland/wholesale-portal/internal/service"
)

// fakeTokenService implements TokenService for testing.
type fakeTokenService struct {
	issueToken string
	issueErr   error
	revokeErr  error
	revoked    []string
}

func (f *fakeTokenService) Issue(ctx context.Context, clientID string) (string, error) {
	return f.issueToken, f.issueErr
}

func (f *fakeTokenService) Revoke(ctx context.Context, token string) error {
	if f.revokeErr != nil {
		return f.revokeErr
	}
	f.revoked = append(f.revoked, token)
	return nil
}

// fakeClientService implements ClientService for testing.
type fakeClientService struct {
	codes       map[string]string
	profile     *models.ClientProfile
	profileErr  error
	profiles    []models.ClientProfile
	profilesErr error
}

func (f *fakeClientService) ResolveClientID(code string) (string, bool) {
	id, ok := f.codes[code]
	return id, ok
}

func (f *fakeClientService) GetProfile(ctx context.Context, clientID string) (*models.ClientProfile, error) {
	return f.profile, f.profileErr
}

func (f *fakeClientService) ListProfiles(ctx context.Context) ([]models.ClientProfile, error) {
	return f.profiles, f.profilesErr
}

func TestAuthHandler_Login(t *testing.T) {
	knownCodes := map[string]string{"1234": "clientA"}
	profile := &models.ClientProfile{ID: "clientA", Name: "Client A", PriceMultiplier: 0.9, StockFactor: 1}

	tests := []struct {
		name           string
		body           string
		tokens         *fakeTokenService
		clients        *fakeClientService
		expectedCode   int
		expectedSubstr string
	}{
		{
			name:           "invalid JSON",
			body:           `not a json`,
			tokens:         &fakeTokenService{},
			clients:        &fakeClientService{codes: knownCodes},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Please enter an access code.",
		},
		{
			name:           "empty code",
			body:           `{"code":""}`,
			tokens:         &fakeTokenService{},
			clients:        &fakeClientService{codes: knownCodes},
			expectedCode:   http.StatusBadRequest,
			expectedSubstr: "Please enter an access code.",
		},
		{
			name:           "unknown code",
			body:           `{"code":"0000"}`,
			tokens:         &fakeTokenService{},
			clients:        &fakeClientService{codes: knownCodes},
			expectedCode:   http.StatusUnauthorized,
			expectedSubstr: "Invalid access code. Try again.",
		},
		{
			name:           "profile missing for known client",
			body:           `{"code":"1234"}`,
			tokens:         &fakeTokenService{},
			clients:        &fakeClientService{codes: knownCodes, profileErr: repository.ErrNotFound},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "Client profile not found.",
		},
		{
			name:           "signing secret missing",
			body:           `{"code":"1234"}`,
			tokens:         &fakeTokenService{issueErr: service.ErrMissingSecret},
			clients:        &fakeClientService{codes: knownCodes, profile: profile},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "Server misconfiguration",
		},
		{
			name:           "issue failure",
			body:           `{"code":"1234"}`,
			tokens:         &fakeTokenService{issueErr: errors.New("boom")},
			clients:        &fakeClientService{codes: knownCodes, profile: profile},
			expectedCode:   http.StatusInternalServerError,
			expectedSubstr: "Unexpected server error.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{TokenService: tt.tokens, ClientService: tt.clients, Log: zap.NewNop()}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			buf := new(bytes.Buffer)
			if _, err := buf.ReadFrom(res.Body); err != nil {
				t.Fatalf("failed to read body: %v", err)
			}
			if !bytes.Contains(buf.Bytes(), []byte(tt.expectedSubstr)) {
				t.Errorf("expected body to contain %q, got %q", tt.expectedSubstr, buf.String())
			}
		})
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	h := &AuthHandler{
		TokenService: &fakeTokenService{issueToken: "signed-token"},
		ClientService: &fakeClientService{
			codes:   map[string]string{"1234": "clientA"},
			profile: &models.ClientProfile{ID: "clientA", Name: "Client A", PriceMultiplier: 1, StockFactor: 1},
		},
		Log: zap.NewNop(),
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/login", bytes.NewBufferString(`{"code":"1234"}`))
	h.Login(rec, req)
	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d; want 200", res.StatusCode)
	}

	var payload models.LoginResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}
	if payload.Token != "signed-token" {
		t.Errorf("token = %q; want signed-token", payload.Token)
	}
	if payload.ClientID != "clientA" {
		t.Errorf("clientId = %q; want clientA", payload.ClientID)
	}
	if payload.ClientName != "Client A" {
		t.Errorf("clientName = %q; want Client A", payload.ClientName)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name         string
		token        string
		tokens       *fakeTokenService
		expectedCode int
	}{
		{
			name:         "no token in context",
			token:        "",
			tokens:       &fakeTokenService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "invalid token",
			token:        "bad",
			tokens:       &fakeTokenService{revokeErr: service.ErrInvalidToken},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "store failure",
			token:        "good",
			tokens:       &fakeTokenService{revokeErr: errors.New("db down")},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:         "success",
			token:        "good",
			tokens:       &fakeTokenService{},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/logout", nil)
			if tt.token != "" {
				req = req.WithContext(middleware.WithClient(req.Context(), "clientA", tt.token))
			}

			h := &AuthHandler{TokenService: tt.tokens, ClientService: &fakeClientService{}, Log: zap.NewNop()}
			h.Logout(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedCode == http.StatusOK {
				if len(tt.tokens.revoked) != 1 || tt.tokens.revoked[0] != "good" {
					t.Errorf("revoked = %v; want [good]", tt.tokens.revoked)
				}
				if !bytes.Contains(rec.Body.Bytes(), []byte("Logout successful")) {
					t.Errorf("body = %q; want Logout successful", rec.Body.String())
				}
			}
		})
	}
}
