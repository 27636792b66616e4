package utils

import (
	"fmt"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

type LoginUser struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Username string `json:"name"`
}

// GetUser reads the claims stored by the auth middleware.
func GetUser(c *gin.Context) (*LoginUser, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("GetUser: no authenticated user")
	}

	var claims map[string]interface{}
	switch v := currentUser.(type) {
	case jwt.MapClaims:
		claims = v
	case map[string]interface{}:
		claims = v
	default:
		return nil, fmt.Errorf("GetUser: unexpected claims type %T", currentUser)
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)
	if id == "" || role == "" {
		return nil, fmt.Errorf("GetUser: incomplete claims")
	}

	return &LoginUser{
		ID:       id,
		Role:     role,
		Username: username,
	}, nil
}
