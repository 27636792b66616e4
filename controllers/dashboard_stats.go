package controllers

import (
	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

const recentSalesCount = 5

// GetDashboardStats returns the headline totals, the yearly revenue chart
// and the latest sales.
func GetDashboardStats(c *gin.Context) {
	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, analytics.Overview(snap.Clients, snap.Sales, recentSalesCount), "")
}
