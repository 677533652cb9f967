package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tasktrack/tasktrack/pkg/idx"
)

// DefaultAccessTokenTTL is the default lifetime for access tokens. Tokens
// are stateless and cannot be revoked, so the TTL bounds the blast radius
// of a leaked token.
const DefaultAccessTokenTTL = 60 * time.Minute

// Claims are the access-token claims. The subject carries the username; the
// numeric user id and role ride alongside as custom claims.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric identifier of the authenticated user.
	UserID int64 `json:"id"`

	// Role is the user's role tag, e.g. "user" or "admin".
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds minimally-correct claims for an access token.
func NewAccessClaims(
	username string,
	userID int64,
	role string,
	ttl time.Duration,
	issuer string,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.New().String(),
		},
		UserID: userID,
		Role:   role,
	}
}

// ValidateRequired checks that the identity claims the service depends on
// are present. A token missing them is rejected regardless of expiry.
func (c *Claims) ValidateRequired() error {
	if c.Subject == "" || c.UserID == 0 {
		return ErrMissingClaims
	}
	return nil
}

// ValidateIssuer checks the issuer when one is expected. An empty expected
// issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}
	if c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}
