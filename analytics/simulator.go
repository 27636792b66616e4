package analytics

import (
	"math"

	"github.com/rpconseil/dossiers_end/models"
)

// BaseStats are the actual figures of the reference year.
type BaseStats struct {
	Year           int     `json:"year"`
	SaleCount      int     `json:"saleCount"`
	TotalCAPerso   float64 `json:"totalCAPerso"`
	TotalCAGeneral float64 `json:"totalCAGeneral"`
	AvgCAPerso     float64 `json:"avgCAPerso"`
	AvgCAGeneral   float64 `json:"avgCAGeneral"`
	FichePct       float64 `json:"fichePct"`
}

// SimulationInput selects the reference year and overrides its seeds.
// Nil fields keep the reference value.
type SimulationInput struct {
	Year         int
	Count        *int
	FichePct     *float64
	AvgCAPerso   *float64
	AvgCAGeneral *float64
}

// MonthProjection is the projected activity of one calendar month.
type MonthProjection struct {
	Month     int     `json:"month"`
	Weight    float64 `json:"weight"`
	SaleCount float64 `json:"saleCount"`
	CAPerso   float64 `json:"caPerso"`
}

// Simulation is the N+1 projection built on a reference year.
type Simulation struct {
	Reference       BaseStats `json:"reference"`
	ProjectedYear   int       `json:"projectedYear"`
	Count           int       `json:"count"`
	FichePct        float64   `json:"fichePct"`
	AvgCAPerso      float64   `json:"avgCAPerso"`
	AvgCAGeneral    float64   `json:"avgCAGeneral"`
	FicheCount      int       `json:"ficheCount"`
	ParrainageCount int       `json:"parrainageCount"`

	TotalCAPerso    float64 `json:"totalCAPerso"`
	TotalCAGeneral  float64 `json:"totalCAGeneral"`
	GrowthCAPerso   float64 `json:"growthCAPerso"`
	GrowthCAGeneral float64 `json:"growthCAGeneral"`

	Monthly []MonthProjection `json:"monthly"`
}

// LatestYear is the highest fiscal year among sales, 0 when there are none.
func LatestYear(sales []models.Sale) int {
	latest := 0
	for _, s := range sales {
		if s.Annee > latest {
			latest = s.Annee
		}
	}
	return latest
}

// ReferenceStats computes the seeds from the non-cancelled sales of year;
// year 0 picks the latest year present.
func ReferenceStats(sales []models.Sale, year int) BaseStats {
	if year == 0 {
		year = LatestYear(sales)
	}
	stats := BaseStats{Year: year}

	fiches := 0
	for _, s := range sales {
		if s.Annee != year || IsCancelled(s.Statut) {
			continue
		}
		stats.SaleCount++
		stats.TotalCAPerso += ParseCurrency(s.CAPerso)
		stats.TotalCAGeneral += ParseCurrency(s.CAGeneral)
		if s.IsFiche() {
			fiches++
		}
	}

	if stats.SaleCount > 0 {
		n := float64(stats.SaleCount)
		stats.AvgCAPerso = stats.TotalCAPerso / n
		stats.AvgCAGeneral = stats.TotalCAGeneral / n
		stats.FichePct = float64(fiches) / n * 100
	}
	return stats
}

// SeasonalWeights is each calendar month's share of all validly dated,
// non-cancelled sales. Without any such sale every month weighs 1/12.
func SeasonalWeights(sales []models.Sale) [12]float64 {
	var counts [12]int
	total := 0
	for _, s := range sales {
		if IsCancelled(s.Statut) {
			continue
		}
		if d, ok := ParseDate(s.DateVente); ok {
			counts[d.Month()-1]++
			total++
		}
	}

	var weights [12]float64
	for m := range weights {
		if total == 0 {
			weights[m] = 1.0 / 12
		} else {
			weights[m] = float64(counts[m]) / float64(total)
		}
	}
	return weights
}

// Simulate projects the year following the reference year.
func Simulate(sales []models.Sale, in SimulationInput) Simulation {
	ref := ReferenceStats(sales, in.Year)
	sim := Simulation{
		Reference:     ref,
		ProjectedYear: ref.Year + 1,
		Count:         ref.SaleCount,
		FichePct:      ref.FichePct,
		AvgCAPerso:    ref.AvgCAPerso,
		AvgCAGeneral:  ref.AvgCAGeneral,
	}

	if in.Count != nil {
		sim.Count = *in.Count
		if sim.Count < 0 {
			sim.Count = 0
		}
	}
	if in.FichePct != nil {
		sim.FichePct = math.Min(math.Max(finite(*in.FichePct), 0), 100)
	}
	if in.AvgCAPerso != nil {
		sim.AvgCAPerso = finite(*in.AvgCAPerso)
	}
	if in.AvgCAGeneral != nil {
		sim.AvgCAGeneral = finite(*in.AvgCAGeneral)
	}

	n := float64(sim.Count)
	sim.FicheCount = int(math.Round(n * sim.FichePct / 100))
	sim.ParrainageCount = sim.Count - sim.FicheCount
	sim.TotalCAPerso = n * sim.AvgCAPerso
	sim.TotalCAGeneral = n * sim.AvgCAGeneral
	sim.GrowthCAPerso = growth(sim.TotalCAPerso, ref.TotalCAPerso)
	sim.GrowthCAGeneral = growth(sim.TotalCAGeneral, ref.TotalCAGeneral)

	weights := SeasonalWeights(sales)
	sim.Monthly = make([]MonthProjection, 12)
	for m, w := range weights {
		sim.Monthly[m] = MonthProjection{
			Month:     m + 1,
			Weight:    w,
			SaleCount: n * w,
			CAPerso:   sim.TotalCAPerso * w,
		}
	}
	return sim
}

// growth is the percentage change from reference to projected, 0 when the
// reference is 0.
func growth(projected, reference float64) float64 {
	if reference == 0 {
		return 0
	}
	return (projected - reference) / reference * 100
}
