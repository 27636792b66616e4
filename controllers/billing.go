package controllers

import (
	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

type yearBillingView struct {
	analytics.YearBilling
	Flags analytics.BillingFlags `json:"flags"`
}

// GetBilling returns the billing and cancellation indicators of every
// fiscal year, or of ?year= alone, with their threshold flags.
func GetBilling(c *gin.Context) {
	year, err := queryInt(c, "year", 0)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	years := analytics.BillingByYear(analytics.FilterByYear(snap.Sales, year))
	views := make([]yearBillingView, 0, len(years))
	for _, y := range years {
		views = append(views, yearBillingView{YearBilling: y, Flags: thresholds.Flag(y)})
	}

	utils.SuccessResponse(c, gin.H{
		"years":      views,
		"thresholds": thresholds,
	}, "")
}
