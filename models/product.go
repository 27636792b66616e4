package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalogue entry (PINEL, SCPI, Assurance vie...). Sales refer
// to it by name in Produit and optionally by id in ProduitID.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Nom         string             `json:"nom" bson:"nom"`
	Description string             `json:"description" bson:"description"`
	CreatedAt   time.Time          `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProductRequest is the create payload for a product.
type ProductRequest struct {
	Nom         string `json:"nom" binding:"required"`
	Description string `json:"description"`
}
