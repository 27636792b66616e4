package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterClientRoutes(router *gin.Engine) {
	clientGroup := router.Group("/api/clients")
	clientGroup.Use(middleware.AuthMiddleware())

	clientGroup.GET("", controllers.GetClients)
	clientGroup.POST("", controllers.CreateClient)
	clientGroup.GET("/:id", controllers.GetClient)
	clientGroup.PUT("/:id", controllers.UpdateClient)
	clientGroup.DELETE("/:id", controllers.DeleteClient)
}
