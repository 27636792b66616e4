package controllers

import (
	"net/http"
	"strings"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

func GetProductList(c *gin.Context) {
	products, err := store.ListProducts(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"products": products, "total": len(products)}, "")
}

func CreateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nom) == "" {
		utils.HandleError(c, utils.CreateBadRequestError("le nom du produit est obligatoire"))
		return
	}

	product := models.Product{
		Nom:         strings.TrimSpace(req.Nom),
		Description: strings.TrimSpace(req.Description),
	}
	if err := store.CreateProduct(c.Request.Context(), &product); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, product, "produit créé", http.StatusCreated)
}

// UpdateProduct renames or redescribes a catalogue entry; the new name must
// stay unique.
func UpdateProduct(c *gin.Context) {
	var req models.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Nom) == "" {
		utils.HandleError(c, utils.CreateBadRequestError("le nom du produit est obligatoire"))
		return
	}

	product := models.Product{
		Nom:         strings.TrimSpace(req.Nom),
		Description: strings.TrimSpace(req.Description),
	}
	if err := store.UpdateProduct(c.Request.Context(), c.Param("id"), &product); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, product, "produit mis à jour")
}

// DeleteProduct removes a catalogue entry. Sales keep the product name
// they were recorded with.
func DeleteProduct(c *gin.Context) {
	if err := store.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, nil, "produit supprimé")
}
