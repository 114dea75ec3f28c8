package sfexplorer

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type stateClaims struct {
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

func newNonce() (string, error) {
	bs := make([]byte, 32)
	if _, err := rand.Read(bs); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(bs), nil
}

func (a *App) signState(nonce string, now time.Time) (string, error) {
	claims := stateClaims{
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.config.AppURL,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.config.ClientSecret))
}

func (a *App) parseState(token string) (string, error) {
	var claims stateClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (interface{}, error) {
		return []byte(a.config.ClientSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(a.config.AppURL),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to parse state: %w", err)
	}
	if claims.Nonce == "" {
		return "", errors.New("state carries no nonce")
	}
	return claims.Nonce, nil
}
