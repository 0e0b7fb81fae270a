package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"loantrack/config"
	"loantrack/models"
)

// Claims carries the signed identity presented on each request.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// GenerateAuthToken signs an HS256 token for the given user. Tokens are
// stateless; there is no server-side session or revocation list.
func GenerateAuthToken(user *models.User) (string, error) {
	ttl := time.Duration(config.AppConfig.TokenTTLHours) * time.Hour
	claims := &Claims{
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseAuthToken verifies the signature and expiry and returns the claims.
// Expired, tampered and malformed tokens all fail the same way.
func ParseAuthToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}
