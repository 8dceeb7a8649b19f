package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	accountID, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if accountID != 42 {
		t.Fatalf("expected account 42, got %d", accountID)
	}
}

func TestJWTTamperedTokenRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// flip a character in the signature segment
	i := strings.LastIndex(token, ".") + 1
	b := []byte(token)
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}

	if _, err := ParseJWT(string(b)); err == nil {
		t.Fatal("tampered token must not parse")
	}
}

func TestJWTWrongSecretRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	InitJWT()
	token, err := GenerateJWT(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	t.Setenv("JWT_SECRET", "secret-two")
	InitJWT()
	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestJWTSessionTTLFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL", "30m")
	InitJWT()

	token, err := GenerateJWT(9)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	if got := time.Duration(exp-iat) * time.Second; got != 30*time.Minute {
		t.Fatalf("expected 30m token lifetime, got %v", got)
	}
}

func TestJWTForeignIssuerRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	InitJWT()

	now := time.Now()
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iss":        "someone-else",
		"account_id": int64(5),
		"exp":        now.Add(time.Hour).Unix(),
		"iat":        now.Unix(),
	})
	token, err := foreign.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ParseJWT(token); err == nil {
		t.Fatal("token from another issuer must not parse")
	}
}
