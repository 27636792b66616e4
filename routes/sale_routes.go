package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterSaleRoutes(router *gin.Engine) {
	saleGroup := router.Group("/api/sales")
	saleGroup.Use(middleware.AuthMiddleware())

	saleGroup.GET("", controllers.GetSales)
	saleGroup.POST("", controllers.CreateSale)
	saleGroup.PUT("/:id", controllers.UpdateSale)
	saleGroup.DELETE("/:id", controllers.DeleteSale)
}
