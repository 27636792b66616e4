package controllers

import (
	"net/http"
	"sort"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// GetSales lists sales, newest number first, optionally for one ?year=.
func GetSales(c *gin.Context) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	sales := analytics.FilterByYear(snap.Sales, year)
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Numero > sales[j].Numero })
	utils.SuccessResponse(c, gin.H{
		"sales": sales,
		"total": len(sales),
		"years": analytics.Years(snap.Sales),
	}, "")
}

func CreateSale(c *gin.Context) {
	sale, ok := bindSale(c)
	if !ok {
		return
	}

	if err := store.CreateSale(c.Request.Context(), sale); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, sale, "vente créée", http.StatusCreated)
}

func UpdateSale(c *gin.Context) {
	sale, ok := bindSale(c)
	if !ok {
		return
	}

	if err := store.UpdateSale(c.Request.Context(), c.Param("id"), sale); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, sale, "vente mise à jour")
}

func DeleteSale(c *gin.Context) {
	if err := store.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, nil, "vente supprimée")
}

// bindSale decodes a sale payload and resolves its client, whose display
// name is copied onto the sale.
func bindSale(c *gin.Context) (*models.Sale, bool) {
	var req models.SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("vente invalide: "+err.Error()))
		return nil, false
	}

	client, err := store.GetClient(c.Request.Context(), req.ClientID)
	if err != nil {
		utils.HandleError(c, err)
		return nil, false
	}

	sale := &models.Sale{}
	req.ApplyTo(sale)
	sale.ClientNom = client.DisplayName()
	return sale, true
}
