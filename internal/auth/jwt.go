// Package auth issues and verifies the bearer tokens the API boundary uses
// to resolve the calling user.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/planwheel/planwheel-server/internal/apperr"
)

const tokenTTL = 30 * 24 * time.Hour

// Claims carries the authenticated user id.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenManager signs and parses HS256 tokens with a shared secret.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Generate issues a token for the user.
func (m *TokenManager) Generate(userID uint) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse verifies a token and returns the user id it names. Any failure is
// reported as UNAUTHORIZED; the boundary should not distinguish expired
// from forged.
func (m *TokenManager) Parse(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.ErrUnauthorized
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, apperr.ErrUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return 0, apperr.ErrUnauthorized
	}
	return claims.UserID, nil
}
