package controllers

import (
	"net/http"
	"strings"

	"github.com/rpconseil/dossiers_end/analytics"
	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/service"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

// GetClients lists every client with its sales totals, most recently
// active first, optionally filtered by ?keyword= on the display name.
func GetClients(c *gin.Context) {
	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}

	summaries := analytics.FilterClients(analytics.RollupClients(snap.Clients, snap.Sales), c.Query("keyword"))
	utils.SuccessResponse(c, gin.H{
		"clients": summaries,
		"total":   len(summaries),
	}, "")
}

// GetClient returns one client with its rolled-up sales.
func GetClient(c *gin.Context) {
	client, err := store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	snap, ok := loadSnapshot(c)
	if !ok {
		return
	}
	summary := analytics.RollupClients([]models.Client{*client}, snap.Sales)[0]
	utils.SuccessResponse(c, summary, "")
}

func CreateClient(c *gin.Context) {
	var req models.ClientCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("le nom du client est obligatoire"))
		return
	}

	client := models.Client{
		Nom:            strings.TrimSpace(req.Nom),
		Prenom:         strings.TrimSpace(req.Prenom),
		PatrimoineBrut: req.PatrimoineBrut,
		DateEntree:     strings.TrimSpace(req.DateEntree),
		Statut:         req.Statut,
	}
	if client.Nom == "" {
		utils.HandleError(c, utils.CreateBadRequestError("le nom du client est obligatoire"))
		return
	}

	if err := store.CreateClient(c.Request.Context(), &client); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, client, "client créé", http.StatusCreated)
}

// UpdateClient applies a partial update restricted to the editable fields.
func UpdateClient(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		utils.HandleError(c, utils.CreateBadRequestError("corps de requête invalide"))
		return
	}

	fields, err := service.SanitizeClientUpdate(raw)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	client, err := store.UpdateClientFields(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, client, "client mis à jour")
}

// DeleteClient removes a client together with its sales.
func DeleteClient(c *gin.Context) {
	deletedSales, err := store.DeleteClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, gin.H{"deletedSales": deletedSales}, "client supprimé")
}
