package controllers

import (
	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// GetSimulation projects the year after ?year= (latest year by default).
// count, fichePct, avgCAPerso and avgCAGeneral override the reference seeds.
func GetSimulation(c *gin.Context) {
	var (
		in  analytics.SimulationInput
		err error
	)
	if in.Year, err = queryInt(c, "year", 0); err != nil {
		utils.HandleError(c, err)
		return
	}
	if in.Count, err = queryOptionalInt(c, "count"); err != nil {
		utils.HandleError(c, err)
		return
	}
	if in.FichePct, err = queryOptionalFloat(c, "fichePct"); err != nil {
		utils.HandleError(c, err)
		return
	}
	if in.AvgCAPerso, err = queryOptionalFloat(c, "avgCAPerso"); err != nil {
		utils.HandleError(c, err)
		return
	}
	if in.AvgCAGeneral, err = queryOptionalFloat(c, "avgCAGeneral"); err != nil {
		utils.HandleError(c, err)
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, analytics.Simulate(snap.Sales, in), "")
}
