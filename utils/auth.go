package utils

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// RoleAdvisor is the only role: everyone holding the shared password is an advisor.
const RoleAdvisor = "ADVISOR"

const tokenLifetime = 30 * 24 * time.Hour

var (
	jwtSecret      []byte
	sharedPassword string
)

// InitAuth sets the token signing key and the shared dashboard password.
func InitAuth(secret, password string) {
	jwtSecret = []byte(secret)
	sharedPassword = password
}

// VerifySharedPassword compares password with the configured secret in constant time.
// An unset secret never matches.
func VerifySharedPassword(password string) bool {
	if sharedPassword == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(sharedPassword)) == 1
}

// GenerateToken issues a session token for username.
func GenerateToken(username string) (string, error) {
	if len(jwtSecret) == 0 {
		return "", fmt.Errorf("jwt secret not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"id":       username,
		"username": username,
		"role":     RoleAdvisor,
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("token signing failed")
		return "", err
	}
	return tokenString, nil
}

// ParseToken validates tokenString and returns its claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
