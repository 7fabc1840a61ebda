// Package service provides the business logic of the portal: session
// token management and client catalog computation, delegating persistence
// to repository interfaces.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingSecret indicates the signing secret is not configured.
	// This is a server misconfiguration, distinct from a bad token.
	ErrMissingSecret = errors.New("signing secret is not configured")
	// ErrInvalidToken is returned for malformed, tampered, expired or
	// revoked tokens. Callers get no further detail.
	ErrInvalidToken = errors.New("invalid token")
)

// DefaultTokenTTL is the session token lifetime used when none is configured.
const DefaultTokenTTL = 2 * time.Hour

// RevocationStore defines the persistence operations required for
// explicit token revocation.
type RevocationStore interface {
	// Add marks the token id as revoked until expiresAt. Must be idempotent.
	Add(ctx context.Context, jti string, expiresAt time.Time) error
	// Contains reports whether the token id has been revoked.
	Contains(ctx context.Context, jti string) (bool, error)
}

// Claims are the JWT claims carried by a session token.
type Claims struct {
	// ClientID identifies the authenticated client.
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

// TokenService issues, verifies and revokes signed session tokens.
// Tokens are HS256 JWTs carrying the client id and a unique token id
// used as the revocation key.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	store  RevocationStore

	// now is the clock; replaced in tests to exercise expiry boundaries.
	now func() time.Time
}

// NewTokenService constructs a TokenService. secret may be empty, in
// which case Issue and Verify fail with ErrMissingSecret. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration, store RevocationStore) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		store:  store,
		now:    time.Now,
	}
}

// Issue creates a signed token binding clientID, valid for the configured
// lifetime. Fails with ErrMissingSecret if no secret is configured.
func (s *TokenService) Issue(ctx context.Context, clientID string) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrMissingSecret
	}
	now := s.now()
	claims := Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify validates the token's signature and expiry and rejects revoked
// tokens. On success it returns the client id bound to the token. Any
// malformed, tampered, expired or revoked token yields ErrInvalidToken;
// no distinction between these cases is surfaced.
func (s *TokenService) Verify(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	revoked, err := s.store.Contains(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrInvalidToken
	}
	return claims.ClientID, nil
}

// Revoke inserts the token into the revocation store. The token must
// still be valid; revoking an already-revoked token succeeds.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.store.Add(ctx, claims.ID, claims.ExpiresAt.Time)
}

// IsRevoked reports whether the token has been explicitly revoked.
func (s *TokenService) IsRevoked(ctx context.Context, token string) (bool, error) {
	claims, err := s.parse(token)
	if err != nil {
		return false, err
	}
	return s.store.Contains(ctx, claims.ID)
}

func (s *TokenService) parse(token string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.ID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
