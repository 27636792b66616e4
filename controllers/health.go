package controllers

import (
	"net/http"

	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DbStatus reports the document count of each collection.
func DbStatus(c *gin.Context) {
	status, err := dbStatus(c.Request.Context())
	if err != nil {
		utils.HandleError(c, utils.NewAppError("état de la base indisponible", http.StatusServiceUnavailable, err))
		return
	}
	c.JSON(http.StatusOK, status)
}
