package analytics

import (
	"sort"

	"github.com/rpconseil/dossiers_end/models"
)

// Overview builds the dashboard headline figures. Totals cover every sale,
// cancelled ones included; recent keeps that many latest sales by number.
func Overview(clients []models.Client, sales []models.Sale, recent int) models.DashboardDataResponse {
	resp := models.DashboardDataResponse{
		ClientCount: len(clients),
		SaleCount:   len(sales),
		YearlyCA:    []models.YearlyCAItem{},
		RecentSales: []models.RecentSaleItem{},
	}

	for _, s := range sales {
		resp.TotalCAGeneral += ParseCurrency(s.CAGeneral)
		resp.TotalCAPerso += ParseCurrency(s.CAPerso)
	}
	resp.TotalCAGeneralLabel = FormatCurrency(resp.TotalCAGeneral)
	resp.TotalCAPersoLabel = FormatCurrency(resp.TotalCAPerso)

	for _, p := range YearlyEvolution(sales) {
		resp.YearlyCA = append(resp.YearlyCA, models.YearlyCAItem{
			Year:      p.Year,
			CAGeneral: p.CAGeneral,
			CAPerso:   p.CAPerso,
		})
	}

	latest := make([]models.Sale, len(sales))
	copy(latest, sales)
	sort.SliceStable(latest, func(i, j int) bool {
		if latest[i].Numero != latest[j].Numero {
			return latest[i].Numero > latest[j].Numero
		}
		return latest[i].CreatedAt.After(latest[j].CreatedAt)
	})
	if recent >= 0 && len(latest) > recent {
		latest = latest[:recent]
	}
	for _, s := range latest {
		item := models.RecentSaleItem{
			Numero:    s.Numero,
			ClientNom: s.ClientNom,
			Produit:   s.Produit,
			Annee:     s.Annee,
			CAGeneral: s.CAGeneral,
		}
		if !s.ID.IsZero() {
			item.ID = s.ID.Hex()
		}
		resp.RecentSales = append(resp.RecentSales, item)
	}
	return resp
}
