package controllers

import (
	"strings"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// GetAnalysis returns the breakdowns, referral graph and cycle charts for
// ?year= (all years when absent).
func GetAnalysis(c *gin.Context) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"analysis": analytics.Analyze(snap.Clients, snap.Sales, year),
		"years":    analytics.Years(snap.Sales),
	}, "")
}

// GetProductAnalysis returns the detail charts of the product named in the path.
func GetProductAnalysis(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		utils.HandleError(c, utils.CreateBadRequestError("nom de produit manquant"))
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	result := analytics.AnalyzeProduct(snap.Sales, name)
	if result.SaleCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("produit"))
		return
	}
	utils.SuccessResponse(c, result, "")
}
