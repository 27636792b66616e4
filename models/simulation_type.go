package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SimulationType is a reusable client simulation template from the
// settings page. Type names the simulation family (PER, PINEL, ...).
type SimulationType struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Nom         string             `json:"nom" bson:"nom"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

type SimulationTypeRequest struct {
	Nom         string `json:"nom" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}
