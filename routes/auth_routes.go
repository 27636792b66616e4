package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	auth.POST("/login", controllers.Login)
	auth.GET("/validate", middleware.AuthMiddleware(), controllers.ValidateToken)
}
