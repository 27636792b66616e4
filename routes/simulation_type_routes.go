package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSimulationTypeRoutes(router *gin.Engine) {
	templateGroup := router.Group("/api/simulation-types")
	templateGroup.Use(middleware.AuthMiddleware())

	templateGroup.GET("", controllers.GetSimulationTypes)
	templateGroup.POST("", controllers.CreateSimulationType)
	templateGroup.PUT("/:id", controllers.UpdateSimulationType)
	templateGroup.DELETE("/:id", controllers.DeleteSimulationType)
}
