// Package middleware provides HTTP middlewares for authentication,
// CORS and request logging.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

type ctxKey string

const (
	clientKey ctxKey = "client"
	tokenKey  ctxKey = "token"
)

// TokenVerifier validates a session token and returns the client id it
// is bound to.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// BearerAuth is a middleware that enforces bearer token authentication.
//
// It extracts the token from the Authorization header, verifies it (which
// includes the revocation check), and stores the client id and the raw
// token in the request context for downstream handlers. Requests without
// a valid token receive a 401 error envelope.
func BearerAuth(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				writeAuthError(w, "Unauthorized")
				return
			}
			clientID, err := tokens.Verify(r.Context(), token)
			if err != nil {
				writeAuthError(w, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClient(r.Context(), clientID, token)))
		})
	}
}

// WithClient returns a context carrying the authenticated client id and
// the raw bearer token.
func WithClient(ctx context.Context, clientID, token string) context.Context {
	ctx = context.WithValue(ctx, clientKey, clientID)
	return context.WithValue(ctx, tokenKey, token)
}

// BearerToken extracts the token from the Authorization header.
// Returns an empty string if the header is missing or malformed.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// GetClientIDFromContext extracts the authenticated client id from the
// request context. Returns an empty string if not found.
func GetClientIDFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(clientKey).(string); ok {
		return s
	}
	return ""
}

// GetTokenFromContext extracts the raw bearer token from the request
// context. Returns an empty string if not found.
func GetTokenFromContext(ctx context.Context) string {
	if s, ok := ctx.Value(tokenKey).(string); ok {
		return s
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
