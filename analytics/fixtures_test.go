package analytics

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rpconseil/dossiers_end/models"
)

func newClient(nom, prenom string) models.Client {
	return models.Client{ID: primitive.NewObjectID(), Nom: nom, Prenom: prenom}
}

func saleFor(c models.Client, annee int, typ, statut, caPerso, caGeneral string) models.Sale {
	return models.Sale{
		ClientID:  c.ID.Hex(),
		ClientNom: c.DisplayName(),
		Annee:     annee,
		Type:      typ,
		Statut:    statut,
		CAPerso:   caPerso,
		CAGeneral: caGeneral,
	}
}

func datedSale(c models.Client, dateVente, parrain string) models.Sale {
	s := saleFor(c, 2020, models.SaleTypeParrainage, models.SaleStatusPaid, "", "")
	s.DateVente = dateVente
	s.Parrain = parrain
	return s
}
