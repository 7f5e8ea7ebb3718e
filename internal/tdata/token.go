package tdata

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenSubject  = "tgsession"
	tokenValidity = 60 * time.Second
)

// GenerateToken signs a short-lived HS256 bearer token for the lookup service.
func GenerateToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
