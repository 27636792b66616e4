package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardStatsRoutes mounts the read-only analytics endpoints.
func RegisterDashboardStatsRoutes(router *gin.Engine) {
	stats := router.Group("/api")
	stats.Use(middleware.AuthMiddleware())

	stats.GET("/dashboard-stats", controllers.GetDashboardStats)
	stats.GET("/billing", controllers.GetBilling)
	stats.GET("/analysis", controllers.GetAnalysis)
	stats.GET("/product-analysis/:name", controllers.GetProductAnalysis)
	stats.GET("/simulator", controllers.GetSimulation)
}
