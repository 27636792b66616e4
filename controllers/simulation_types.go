package controllers

import (
	"net/http"
	"strings"

	"github.com/rpconseil/dossiers_end/models"
	"github.com/rpconseil/dossiers_end/utils"

	"github.com/gin-gonic/gin"
)

func GetSimulationTypes(c *gin.Context) {
	templates, err := store.ListSimulationTypes(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"simulationTypes": templates, "total": len(templates)}, "")
}

func CreateSimulationType(c *gin.Context) {
	template, ok := bindSimulationType(c)
	if !ok {
		return
	}
	if err := store.CreateSimulationType(c.Request.Context(), template); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, template, "modèle créé", http.StatusCreated)
}

func UpdateSimulationType(c *gin.Context) {
	template, ok := bindSimulationType(c)
	if !ok {
		return
	}
	if err := store.UpdateSimulationType(c.Request.Context(), c.Param("id"), template); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, template, "modèle mis à jour")
}

func DeleteSimulationType(c *gin.Context) {
	if err := store.DeleteSimulationType(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleError(c, err)
		return
	}
	afterWrite()
	utils.SuccessResponse(c, nil, "modèle supprimé")
}

// bindSimulationType requires a name and a type, as the settings form does.
func bindSimulationType(c *gin.Context) (*models.SimulationType, bool) {
	var req models.SimulationTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Type) == "" {
		utils.HandleError(c, utils.CreateBadRequestError("le nom et le type sont obligatoires"))
		return nil, false
	}
	return &models.SimulationType{
		Nom:         strings.TrimSpace(req.Nom),
		Type:        strings.TrimSpace(req.Type),
		Description: strings.TrimSpace(req.Description),
	}, true
}
