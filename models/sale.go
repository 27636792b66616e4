package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sale types. Fiche is partner-sourced, Parrainage is client-referred.
const (
	SaleTypeFiche      = "F"
	SaleTypeParrainage = "P"
)

// Sale statuses as entered by the back office.
const (
	SaleStatusToInvoice       = "A facturer"
	SaleStatusInvoiced        = "Facturé"
	SaleStatusAwaitingPayment = "Facturé en attente de paiement"
	SaleStatusPaid            = "Réglé"
	SaleStatusCancelled       = "Annulé"
	SaleStatusInProgress      = "En cours"
	SaleStatusDisputed        = "Litige"
)

// Sale is one product sold to a client (a "dossier").
// Monetary fields keep their locale-formatted text; "SO" means not applicable.
type Sale struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Numero    int                `json:"numero" bson:"numero"`
	ClientID  string             `json:"clientId" bson:"clientId"`
	ProduitID string             `json:"produitId,omitempty" bson:"produitId,omitempty"`
	Produit   string             `json:"produit" bson:"produit"`
	ClientNom string             `json:"clientNom" bson:"clientNom"`
	Type      string             `json:"type" bson:"type"`
	Parrain   string             `json:"parrain" bson:"parrain"`
	DateVente string             `json:"dateVente" bson:"dateVente"`
	Programme string             `json:"programme" bson:"programme"`
	Promoteur string             `json:"promoteur" bson:"promoteur"`

	PrixPack          string `json:"prixPack" bson:"prixPack"`
	Prix              string `json:"prix" bson:"prix"`
	Dispositif        string `json:"dispositif" bson:"dispositif"`
	Remuneration      string `json:"remuneration" bson:"remuneration"`
	CAGeneral         string `json:"caGeneral" bson:"caGeneral"`
	CAPerso           string `json:"caPerso" bson:"caPerso"`
	FIngenierie       string `json:"fIngenierie" bson:"fIngenierie"`
	FIngenierieRPC    string `json:"fIngenierieRPC" bson:"fIngenierieRPC"`
	MontantFacturable string `json:"montantFacturable" bson:"montantFacturable"`
	DateFacture       string `json:"dateFacture" bson:"dateFacture"`
	Annulation        string `json:"annulation" bson:"annulation"`
	Statut            string `json:"statut" bson:"statut"`
	AnnulationBoolean string `json:"annulationBoolean" bson:"annulationBoolean"`
	Commentaires      string `json:"commentaires" bson:"commentaires"`
	Annee             int    `json:"annee" bson:"annee"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsFiche reports a partner-sourced sale ("F" or "Fiche").
func (s Sale) IsFiche() bool {
	t := strings.TrimSpace(s.Type)
	return strings.EqualFold(t, SaleTypeFiche) || strings.EqualFold(t, "Fiche")
}

// IsParrainage reports a client-referred sale ("P" or "Parrainage").
func (s Sale) IsParrainage() bool {
	t := strings.TrimSpace(s.Type)
	return strings.EqualFold(t, SaleTypeParrainage) || strings.EqualFold(t, "Parrainage")
}

// SaleRequest is the create/update payload for a sale.
type SaleRequest struct {
	ClientID          string `json:"clientId" binding:"required"`
	ProduitID         string `json:"produitId"`
	Produit           string `json:"produit" binding:"required"`
	Type              string `json:"type" binding:"required,oneof=F P"`
	Parrain           string `json:"parrain"`
	DateVente         string `json:"dateVente"`
	Programme         string `json:"programme"`
	Promoteur         string `json:"promoteur"`
	PrixPack          string `json:"prixPack"`
	Prix              string `json:"prix"`
	Dispositif        string `json:"dispositif"`
	Remuneration      string `json:"remuneration"`
	CAGeneral         string `json:"caGeneral"`
	CAPerso           string `json:"caPerso"`
	FIngenierie       string `json:"fIngenierie"`
	FIngenierieRPC    string `json:"fIngenierieRPC"`
	MontantFacturable string `json:"montantFacturable"`
	DateFacture       string `json:"dateFacture"`
	Annulation        string `json:"annulation"`
	Statut            string `json:"statut" binding:"required"`
	AnnulationBoolean string `json:"annulationBoolean"`
	Commentaires      string `json:"commentaires"`
	Annee             int    `json:"annee" binding:"required,min=1900"`
}

// ApplyTo copies the request fields onto s, leaving identity and timestamps alone.
func (r SaleRequest) ApplyTo(s *Sale) {
	s.ClientID = r.ClientID
	s.ProduitID = r.ProduitID
	s.Produit = r.Produit
	s.Type = r.Type
	s.Parrain = r.Parrain
	s.DateVente = r.DateVente
	s.Programme = r.Programme
	s.Promoteur = r.Promoteur
	s.PrixPack = r.PrixPack
	s.Prix = r.Prix
	s.Dispositif = r.Dispositif
	s.Remuneration = r.Remuneration
	s.CAGeneral = r.CAGeneral
	s.CAPerso = r.CAPerso
	s.FIngenierie = r.FIngenierie
	s.FIngenierieRPC = r.FIngenierieRPC
	s.MontantFacturable = r.MontantFacturable
	s.DateFacture = r.DateFacture
	s.Annulation = r.Annulation
	s.Statut = r.Statut
	s.AnnulationBoolean = r.AnnulationBoolean
	s.Commentaires = r.Commentaires
	s.Annee = r.Annee
}
