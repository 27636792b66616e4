package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/rpconseil/dossiers_end/models"
)

// Source labels used by the breakdown charts.
const (
	SourceFiche      = "Fiche (Partenaire)"
	SourceParrainage = "Parrainage (Client)"
)

// Unspecified labels a sale whose grouping field is empty.
const Unspecified = "Non renseigné"

// BySource splits sales between partner fiches and referrals. Any sale not
// typed as a fiche counts as a referral. Empty groups are omitted.
func BySource(sales []models.Sale) []models.ChartDataItem {
	fiche := models.ChartDataItem{Name: SourceFiche}
	parrainage := models.ChartDataItem{Name: SourceParrainage}
	for _, s := range sales {
		item := &parrainage
		if s.IsFiche() {
			item = &fiche
		}
		item.Value++
		item.CA += ParseCurrency(s.CAPerso)
	}

	out := make([]models.ChartDataItem, 0, 2)
	for _, item := range []models.ChartDataItem{fiche, parrainage} {
		if item.Value > 0 {
			out = append(out, item)
		}
	}
	return out
}

// ByProduct counts sales and sums CA perso per product, highest CA first.
func ByProduct(sales []models.Sale) []models.ChartDataItem {
	return groupBy(sales, func(s models.Sale) string { return s.Produit })
}

// TopPromoters ranks property developers by CA perso; n <= 0 keeps all.
func TopPromoters(sales []models.Sale, n int) []models.ChartDataItem {
	items := groupBy(sales, func(s models.Sale) string { return s.Promoteur })
	if n > 0 && len(items) > n {
		items = items[:n]
	}
	return items
}

// ByDispositif groups sales by tax scheme, highest CA first.
func ByDispositif(sales []models.Sale) []models.ChartDataItem {
	return groupBy(sales, func(s models.Sale) string { return s.Dispositif })
}

// ByStatus counts sales per status, most frequent first.
func ByStatus(sales []models.Sale) []models.ChartDataItem {
	counts := make(map[string]int)
	for _, s := range sales {
		counts[label(s.Statut)]++
	}
	out := make([]models.ChartDataItem, 0, len(counts))
	for name, n := range counts {
		out = append(out, models.ChartDataItem{Name: name, Value: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func groupBy(sales []models.Sale, key func(models.Sale) string) []models.ChartDataItem {
	byKey := make(map[string]*models.ChartDataItem)
	for _, s := range sales {
		name := label(key(s))
		item, ok := byKey[name]
		if !ok {
			item = &models.ChartDataItem{Name: name}
			byKey[name] = item
		}
		item.Value++
		item.CA += ParseCurrency(s.CAPerso)
	}

	out := make([]models.ChartDataItem, 0, len(byKey))
	for _, item := range byKey {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CA != out[j].CA {
			return out[i].CA > out[j].CA
		}
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func label(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unspecified
	}
	return s
}

// Analysis gathers the charts of the analysis page.
type Analysis struct {
	Year              int                    `json:"year"`
	SaleCount         int                    `json:"saleCount"`
	Sources           []models.ChartDataItem `json:"sources"`
	Products          []models.ChartDataItem `json:"products"`
	TopPromoters      []models.ChartDataItem `json:"topPromoters"`
	Statuses          []models.ChartDataItem `json:"statuses"`
	Evolution         []YearPoint            `json:"evolution"`
	Seasonality       [12]int                `json:"seasonality"`
	AdminCycle        []ProductCycle         `json:"adminCycle"`
	CancellationTrend []YearRate             `json:"cancellationTrend"`
	SponsorshipLag    float64                `json:"sponsorshipLag"`
	ReferralEdges     []ReferralEdge         `json:"referralEdges"`
	TopSponsors       []SponsorScore         `json:"topSponsors"`
}

// Analyze builds the analysis page for fiscal year year (0 for all years).
// The cancellation trend and the referral graph always cover every year.
func Analyze(clients []models.Client, sales []models.Sale, year int) Analysis {
	scoped := FilterByYear(sales, year)
	edges := ReferralEdges(clients, sales)
	if edges == nil {
		edges = []ReferralEdge{}
	}
	return Analysis{
		Year:              year,
		SaleCount:         len(scoped),
		Sources:           BySource(scoped),
		Products:          ByProduct(scoped),
		TopPromoters:      TopPromoters(scoped, 5),
		Statuses:          ByStatus(scoped),
		Evolution:         YearlyEvolution(scoped),
		Seasonality:       Seasonality(scoped),
		AdminCycle:        AdminCycleByProduct(scoped),
		CancellationTrend: CancellationTrend(sales),
		SponsorshipLag:    SponsorshipLag(edges),
		ReferralEdges:     edges,
		TopSponsors:       SponsorLeaderboard(scoped, 10),
	}
}

// ProductAnalysis is the detail page of one product.
type ProductAnalysis struct {
	Product     string                 `json:"product"`
	SaleCount   int                    `json:"saleCount"`
	TotalCA     float64                `json:"totalCA"`
	AvgCycle    float64                `json:"avgCycle"`
	Evolution   []YearPoint            `json:"evolution"`
	CycleByYear []YearCycle            `json:"cycleByYear"`
	Sources     []models.ChartDataItem `json:"sources"`
	Dispositifs []models.ChartDataItem `json:"dispositifs"`
	Seasonality [12]int                `json:"seasonality"`
}

// AnalyzeProduct restricts sales to the exact product name. AvgCycle is the
// rounded mean of the yearly averages.
func AnalyzeProduct(sales []models.Sale, product string) ProductAnalysis {
	var scoped []models.Sale
	for _, s := range sales {
		if s.Produit == product {
			scoped = append(scoped, s)
		}
	}

	pa := ProductAnalysis{
		Product:     product,
		SaleCount:   len(scoped),
		Evolution:   YearlyEvolution(scoped),
		CycleByYear: AdminCycleByYear(scoped),
		Sources:     BySource(scoped),
		Dispositifs: ByDispositif(scoped),
		Seasonality: Seasonality(scoped),
	}
	for _, s := range scoped {
		pa.TotalCA += ParseCurrency(s.CAPerso)
	}
	if len(pa.CycleByYear) > 0 {
		total := 0.0
		for _, c := range pa.CycleByYear {
			total += c.AvgDays
		}
		pa.AvgCycle = math.Round(total / float64(len(pa.CycleByYear)))
	}
	return pa
}
