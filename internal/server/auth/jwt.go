// Package auth validates and mints the HS256 identity tokens issued by the
// identity provider.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the identity: the subject is the user id, email and name
// are custom claims.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// GenerateToken signs a token for identity valid for validityDuration. The
// server only verifies tokens; minting is used by tests and the dev CLI.
func GenerateToken(identity models.Identity, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: identity.Email,
		Name:  identity.DisplayName,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies tokenString and returns the identity it carries.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (models.Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, common.ErrTokenExpired
		}
		return models.Identity{}, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return models.Identity{}, common.ErrInvalidToken
	}

	return models.Identity{ID: claims.Subject, Email: claims.Email, DisplayName: claims.Name}, nil
}
