package routes

import (
	"github.com/rpconseil/dossiers_end/controllers"
	"github.com/rpconseil/dossiers_end/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterProductRoutes(router *gin.Engine) {
	productGroup := router.Group("/api/products")
	productGroup.Use(middleware.AuthMiddleware())

	productGroup.GET("", controllers.GetProductList)
	productGroup.POST("", controllers.CreateProduct)
	productGroup.PUT("/:id", controllers.UpdateProduct)
	productGroup.DELETE("/:id", controllers.DeleteProduct)
}
