package logsapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Service-to-service JWT authentication.
// Using golang-jwt/jwt library for production-ready JWT handling.

const (
	tokenValidity    = time.Hour
	tokenRenewMargin = time.Minute
)

// serviceClaims represents the bearer token claims
type serviceClaims struct {
	ClientID string `json:"client_id"`
	jwt.RegisteredClaims
}

// tokenSource mints HS256 bearer tokens for the aggregation service and
// caches them until shortly before expiry. Safe for concurrent use.
type tokenSource struct {
	clientID   string
	signingKey []byte

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func newTokenSource(clientID, signingKey string) *tokenSource {
	return &tokenSource{
		clientID:   clientID,
		signingKey: []byte(signingKey),
	}
}

// bearer returns a valid signed token, minting a fresh one when the cached
// token is within tokenRenewMargin of expiry.
func (t *tokenSource) bearer() (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.token != "" && time.Until(t.expiresAt) > tokenRenewMargin {
		return t.token, nil
	}

	now := time.Now()
	expiresAt := now.Add(tokenValidity)

	claims := serviceClaims{
		ClientID: t.clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to create token: %w", err)
	}

	t.token = signed
	t.expiresAt = expiresAt
	return signed, nil
}
