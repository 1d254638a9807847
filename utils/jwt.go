package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"time"

	"termcompass/config"
	"termcompass/models"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// AuthTokenTTL is how long an issued token stays valid.
const AuthTokenTTL = 24 * time.Hour

// Claims is the token payload. Category lets gated endpoints decide access without a lookup.
type Claims struct {
	Email    string              `json:"email"`
	Category models.UserCategory `json:"category"`
	jwt.StandardClaims
}

// secretKey prefers the loaded config, then the environment. The fallback is for local runs only.
func secretKey() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("TERMCOMPASS")
}

// GenerateToken creates a signed JWT for the given account subject. The token expires after the
// specified duration. Every token carries a fresh id, so two tokens issued in the same second differ.
func GenerateToken(subject, email string, category models.UserCategory, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		Category: category,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	return claims, nil
}
