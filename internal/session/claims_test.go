package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := signedToken(t, AccessClaims{
		Role: RoleLibrarian,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice@library.com",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	claims, err := ParseClaims(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Role != RoleLibrarian {
		t.Errorf("role: got %q", claims.Role)
	}
	if claims.Subject != "alice@library.com" {
		t.Errorf("subject: got %q", claims.Subject)
	}
	if claims.Expired(time.Now()) {
		t.Error("token should not be expired")
	}
	if !claims.Expired(exp.Add(time.Minute)) {
		t.Error("token should be expired past its expiry")
	}
}

func TestParseClaimsNoExpiry(t *testing.T) {
	tok := signedToken(t, AccessClaims{Role: RoleMember})

	claims, err := ParseClaims(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Expired(time.Now()) {
		t.Error("token without expiry is treated as live")
	}
}

func TestParseClaimsGarbage(t *testing.T) {
	if _, err := ParseClaims("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
