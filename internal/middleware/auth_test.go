package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeVerifier struct {
	clientID string
	err      error
	gotToken string
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (string, error) {
	f.gotToken = token
	return f.clientID, f.err
}

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		verifier     *fakeVerifier
		expectedCode int
	}{
		{
			name:         "missing header",
			header:       "",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "wrong scheme",
			header:       "Basic abc123",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "bare token without scheme",
			header:       "sometoken",
			verifier:     &fakeVerifier{},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "verification failure",
			header:       "Bearer badtoken",
			verifier:     &fakeVerifier{err: errors.New("invalid token")},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			header:       "Bearer goodtoken",
			verifier:     &fakeVerifier{clientID: "clientA"},
			expectedCode: http.StatusOK,
		},
		{
			name:         "lowercase scheme accepted",
			header:       "bearer goodtoken",
			verifier:     &fakeVerifier{clientID: "clientA"},
			expectedCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClient, gotToken string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClient = GetClientIDFromContext(r.Context())
				gotToken = GetTokenFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			BearerAuth(tt.verifier)(next).ServeHTTP(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("status = %d; want %d", rec.Code, tt.expectedCode)
			}
			if tt.expectedCode == http.StatusOK {
				if gotClient != "clientA" {
					t.Errorf("client in context = %q; want clientA", gotClient)
				}
				if gotToken != "goodtoken" {
					t.Errorf("token in context = %q; want goodtoken", gotToken)
				}
			}
		})
	}
}

func TestGetClientIDFromContext_Empty(t *testing.T) {
	if got := GetClientIDFromContext(context.Background()); got != "" {
		t.Errorf("GetClientIDFromContext = %q; want empty", got)
	}
	if got := GetTokenFromContext(context.Background()); got != "" {
		t.Errorf("GetTokenFromContext = %q; want empty", got)
	}
}
