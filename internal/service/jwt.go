package service

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer     = "tapcoin"
	defaultTokenTTL = 24 * time.Hour
)

var (
	jwtSecret []byte
	tokenTTL  = defaultTokenTTL

	ErrInvalidToken = errors.New("invalid token")
)

// InitJWT loads the signing secret and optional session TTL from the
// environment. SESSION_TTL accepts a Go duration string ("12h", "30m").
func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	jwtSecret = []byte(secret)

	tokenTTL = defaultTokenTTL
	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			tokenTTL = d
		}
	}
}

// GenerateJWT issues a session token bound to one account.
func GenerateJWT(accountID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":        tokenIssuer,
		"account_id": accountID,
		"exp":        now.Add(tokenTTL).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseJWT validates a session token and returns the account it belongs to.
func ParseJWT(tokenString string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecret, nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	accountID, ok := claims["account_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}

	return int64(accountID), nil
}
