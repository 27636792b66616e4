package analytics

import (
	"math"
	"sort"

	"github.com/rpconseil/dossiers_end/models"
)

// YearPoint is one year of the evolution chart.
type YearPoint struct {
	Year            int     `json:"year"`
	SaleCount       int     `json:"saleCount"`
	CAPerso         float64 `json:"caPerso"`
	CAGeneral       float64 `json:"caGeneral"`
	FicheCount      int     `json:"ficheCount"`
	ParrainageCount int     `json:"parrainageCount"`
}

// ProductCycle is the average sale-to-invoice delay of a product.
type ProductCycle struct {
	Product string  `json:"product"`
	AvgDays float64 `json:"avgDays"`
	Count   int     `json:"count"`
}

// YearCycle is the average sale-to-invoice delay of a fiscal year.
type YearCycle struct {
	Year    int     `json:"year"`
	AvgDays float64 `json:"avgDays"`
	Count   int     `json:"count"`
}

// YearRate is the cancellation rate of a fiscal year, as a percentage.
type YearRate struct {
	Year      int     `json:"year"`
	Total     int     `json:"total"`
	Cancelled int     `json:"cancelled"`
	Rate      float64 `json:"rate"`
}

// FilterByYear returns the sales of fiscal year year; 0 returns all of them.
func FilterByYear(sales []models.Sale, year int) []models.Sale {
	out := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		if year == 0 || s.Annee == year {
			out = append(out, s)
		}
	}
	return out
}

// Years lists the distinct fiscal years present, most recent first.
func Years(sales []models.Sale) []int {
	seen := make(map[int]bool)
	var years []int
	for _, s := range sales {
		if !seen[s.Annee] {
			seen[s.Annee] = true
			years = append(years, s.Annee)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// YearlyEvolution sums sales per fiscal year, oldest year first.
func YearlyEvolution(sales []models.Sale) []YearPoint {
	byYear := make(map[int]*YearPoint)
	for _, s := range sales {
		p, ok := byYear[s.Annee]
		if !ok {
			p = &YearPoint{Year: s.Annee}
			byYear[s.Annee] = p
		}
		p.SaleCount++
		p.CAPerso += ParseCurrency(s.CAPerso)
		p.CAGeneral += ParseCurrency(s.CAGeneral)
		if s.IsFiche() {
			p.FicheCount++
		} else {
			p.ParrainageCount++
		}
	}

	out := make([]YearPoint, 0, len(byYear))
	for _, p := range byYear {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Seasonality counts sales per calendar month of their sale date
// (index 0 is January). Undated sales are skipped.
func Seasonality(sales []models.Sale) [12]int {
	var months [12]int
	for _, s := range sales {
		if d, ok := ParseDate(s.DateVente); ok {
			months[d.Month()-1]++
		}
	}
	return months
}

// saleCycle is the sale-to-invoice delay in days, if both dates parse and
// the delay lies in (0, MaxLagDays).
func saleCycle(s models.Sale) (int, bool) {
	sold, ok := ParseDate(s.DateVente)
	if !ok {
		return 0, false
	}
	invoiced, ok := ParseDate(s.DateFacture)
	if !ok {
		return 0, false
	}
	days := DaysBetween(sold, invoiced)
	if days <= 0 || days >= MaxLagDays {
		return 0, false
	}
	return days, true
}

// AdminCycleByProduct averages the administrative cycle per product,
// slowest product first.
func AdminCycleByProduct(sales []models.Sale) []ProductCycle {
	type acc struct{ total, count int }
	byProduct := make(map[string]*acc)
	for _, s := range sales {
		if s.Produit == "" {
			continue
		}
		days, ok := saleCycle(s)
		if !ok {
			continue
		}
		a, found := byProduct[s.Produit]
		if !found {
			a = &acc{}
			byProduct[s.Produit] = a
		}
		a.total += days
		a.count++
	}

	out := make([]ProductCycle, 0, len(byProduct))
	for product, a := range byProduct {
		out = append(out, ProductCycle{
			Product: product,
			AvgDays: math.Round(float64(a.total) / float64(a.count)),
			Count:   a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgDays != out[j].AvgDays {
			return out[i].AvgDays > out[j].AvgDays
		}
		return out[i].Product < out[j].Product
	})
	return out
}

// AdminCycleByYear averages the administrative cycle per fiscal year, oldest first.
func AdminCycleByYear(sales []models.Sale) []YearCycle {
	type acc struct{ total, count int }
	byYear := make(map[int]*acc)
	for _, s := range sales {
		days, ok := saleCycle(s)
		if !ok {
			continue
		}
		a, found := byYear[s.Annee]
		if !found {
			a = &acc{}
			byYear[s.Annee] = a
		}
		a.total += days
		a.count++
	}

	out := make([]YearCycle, 0, len(byYear))
	for year, a := range byYear {
		out = append(out, YearCycle{
			Year:    year,
			AvgDays: math.Round(float64(a.total) / float64(a.count)),
			Count:   a.count,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CancellationTrend is the cancellation rate of every fiscal year, oldest
// first. Callers pass the whole dataset so the trend ignores view filters.
func CancellationTrend(sales []models.Sale) []YearRate {
	byYear := make(map[int]*YearRate)
	for _, s := range sales {
		r, ok := byYear[s.Annee]
		if !ok {
			r = &YearRate{Year: s.Annee}
			byYear[s.Annee] = r
		}
		r.Total++
		if IsCancelled(s.Statut) {
			r.Cancelled++
		}
	}

	out := make([]YearRate, 0, len(byYear))
	for _, r := range byYear {
		r.Rate = percent(float64(r.Cancelled), float64(r.Total))
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
