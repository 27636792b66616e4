package controllers

import (
	"net/http"

	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// LoginRequest carries the shared dashboard password. Username only labels
// the session in the operation logs.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges the shared password for a session token.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("mot de passe requis"))
		return
	}

	username := req.Username
	if username == "" {
		username = "conseiller"
	}

	if !utils.VerifySharedPassword(req.Password) {
		utils.Logger.Info().Str("username", username).Msg("login rejected")
		utils.HandleError(c, utils.NewApiError("mot de passe incorrect", http.StatusUnauthorized, "INVALID_CREDENTIALS"))
		return
	}

	token, err := utils.GenerateToken(username)
	if err != nil {
		utils.HandleError(c, utils.NewAppError("impossible de créer la session", http.StatusInternalServerError, err))
		return
	}

	utils.Logger.Info().Str("username", username).Msg("login succeeded")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       username,
			"username": username,
			"role":     utils.RoleAdvisor,
		},
	}, "connexion réussie")
}

// ValidateToken echoes the session of an already authenticated request.
func ValidateToken(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, utils.CreateUnauthorizedError())
		return
	}
	utils.SuccessResponse(c, gin.H{"valid": true, "user": user}, "")
}
