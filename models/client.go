package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is a wealth-management client record. Revenue totals are never
// stored; they are derived from the client's sales.
type Client struct {
	ID                           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Nom                          string             `json:"nom" bson:"nom"`
	Prenom                       string             `json:"prenom" bson:"prenom"`
	PatrimoineBrut               float64            `json:"patrimoineBrut" bson:"patrimoineBrut"`
	DateEntree                   string             `json:"dateEntree" bson:"dateEntree"`
	Statut                       string             `json:"statut" bson:"statut"`
	Identite                     string             `json:"identite" bson:"identite"`
	SituationMatrimonialeFiscale string             `json:"situationMatrimonialeFiscale" bson:"situationMatrimonialeFiscale"`
	Immobilier                   string             `json:"immobilier" bson:"immobilier"`
	AutresCharges                string             `json:"autresCharges" bson:"autresCharges"`
	Epargne                      string             `json:"epargne" bson:"epargne"`
	Objectifs                    string             `json:"objectifs" bson:"objectifs"`
	AutresObservations           string             `json:"autresObservations" bson:"autresObservations"`
	Simulation1                  string             `json:"simulation1" bson:"simulation1"`
	Simulation2                  string             `json:"simulation2" bson:"simulation2"`
	Simulation3                  string             `json:"simulation3" bson:"simulation3"`
	CapaciteEpargne              string             `json:"capaciteEpargne" bson:"capaciteEpargne"`
	CapaciteEmprunt              string             `json:"capaciteEmprunt" bson:"capaciteEmprunt"`
	AnalyseProfil                string             `json:"analyseProfil" bson:"analyseProfil"`
	InfosComplementaires         string             `json:"infosComplementaires" bson:"infosComplementaires"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// DisplayName is "NOM Prénom", or just the last name when no first name is set.
// Sponsor names on sales are matched against it.
func (c Client) DisplayName() string {
	nom := strings.TrimSpace(c.Nom)
	prenom := strings.TrimSpace(c.Prenom)
	if prenom == "" {
		return nom
	}
	return nom + " " + prenom
}

// ClientCreateRequest is the payload for a new client.
type ClientCreateRequest struct {
	Nom            string  `json:"nom" binding:"required"`
	Prenom         string  `json:"prenom"`
	PatrimoineBrut float64 `json:"patrimoineBrut"`
	DateEntree     string  `json:"dateEntree"`
	Statut         string  `json:"statut"`
}

// ClientUpdatableFields is the allow-list of fields a client update may $set.
// JSON and bson names are identical.
var ClientUpdatableFields = map[string]bool{
	"nom":                          true,
	"prenom":                       true,
	"patrimoineBrut":               true,
	"dateEntree":                   true,
	"statut":                       true,
	"identite":                     true,
	"situationMatrimonialeFiscale": true,
	"immobilier":                   true,
	"autresCharges":                true,
	"epargne":                      true,
	"objectifs":                    true,
	"autresObservations":           true,
	"simulation1":                  true,
	"simulation2":                  true,
	"simulation3":                  true,
	"capaciteEpargne":              true,
	"capaciteEmprunt":              true,
	"analyseProfil":                true,
	"infosComplementaires":         true,
}
