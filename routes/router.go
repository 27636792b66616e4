package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route on router.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterClientRoutes(router)
	RegisterSaleRoutes(router)
	RegisterProductRoutes(router)
	RegisterSimulationTypeRoutes(router)
	RegisterDashboardStatsRoutes(router)

	router.GET("/api/health", controllers.Health)
	router.GET("/api/db-status", controllers.DbStatus)
}
