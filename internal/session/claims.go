package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the subset of the access token payload the client cares
// about. The server adds the role as a custom claim and puts the user's email
// in the subject.
type AccessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims decodes the access token payload without verifying the
// signature. The client never holds the signing key; whether the token is
// actually valid is the server's decision, this is display-only (whoami,
// expiry hints).
func ParseClaims(accessToken string) (*AccessClaims, error) {
	parser := jwt.NewParser()

	var claims AccessClaims
	if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
		return nil, fmt.Errorf("decode access token: %w", err)
	}
	return &claims, nil
}

// Expired reports whether the token carries an expiry in the past. Tokens
// without an expiry claim are treated as live.
func (c *AccessClaims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}
