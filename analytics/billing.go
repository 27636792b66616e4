package analytics

import (
	"sort"

	"github.com/rpconseil/dossiers_end/models"
)

// YearBilling holds the billing and cancellation indicators of one fiscal year.
// Rates are percentages in [0, 100].
type YearBilling struct {
	Year int `json:"year"`

	ParrainageCount int     `json:"parrainageCount"`
	FicheCount      int     `json:"ficheCount"`
	ReferralRatio   float64 `json:"referralRatio"`

	Invoiceable     float64 `json:"invoiceable"`
	Paid            float64 `json:"paid"`
	AwaitingPayment float64 `json:"awaitingPayment"`
	ToInvoice       float64 `json:"toInvoice"`
	InvoicingRate   float64 `json:"invoicingRate"`
	PaymentRate     float64 `json:"paymentRate"`

	SaleCount          int     `json:"saleCount"`
	CancelledCount     int     `json:"cancelledCount"`
	CancellationAmount float64 `json:"cancellationAmount"`
	CancellationRate   float64 `json:"cancellationRate"`

	// AdvisorTotal is CA perso plus the advisor's engineering fee,
	// HouseTotal is CA général plus the firm's engineering fee.
	AdvisorTotal float64 `json:"advisorTotal"`
	HouseTotal   float64 `json:"houseTotal"`
	AdvisorShare float64 `json:"advisorShare"`
}

// BillingByYear groups sales by Annee and computes each year's indicators,
// most recent year first.
func BillingByYear(sales []models.Sale) []YearBilling {
	byYear := make(map[int][]models.Sale)
	for _, s := range sales {
		byYear[s.Annee] = append(byYear[s.Annee], s)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	out := make([]YearBilling, 0, len(years))
	for _, y := range years {
		out = append(out, yearBilling(y, byYear[y]))
	}
	return out
}

func yearBilling(year int, sales []models.Sale) YearBilling {
	b := YearBilling{Year: year}

	for _, s := range sales {
		switch {
		case s.IsParrainage():
			b.ParrainageCount++
		case s.IsFiche():
			b.FicheCount++
		}

		if IsCancelled(s.Statut) {
			b.CancelledCount++
			b.CancellationAmount += ParseCurrency(s.Annulation)
			continue
		}

		amount := ParseCurrency(s.MontantFacturable)
		b.Invoiceable += amount
		switch s.Statut {
		case models.SaleStatusPaid:
			b.Paid += amount
		case models.SaleStatusAwaitingPayment:
			b.AwaitingPayment += amount
		case models.SaleStatusToInvoice:
			b.ToInvoice += amount
		}

		b.AdvisorTotal += ParseCurrency(s.CAPerso) + ParseCurrency(s.FIngenierieRPC)
		b.HouseTotal += ParseCurrency(s.CAGeneral) + ParseCurrency(s.FIngenierie)
	}

	// only typed sales count toward the year's total
	b.SaleCount = b.ParrainageCount + b.FicheCount
	b.ReferralRatio = percent(float64(b.ParrainageCount), float64(b.SaleCount))
	b.CancellationRate = percent(float64(b.CancelledCount), float64(b.SaleCount))
	b.InvoicingRate = percent(b.Paid+b.AwaitingPayment, b.Invoiceable)
	b.PaymentRate = percent(b.Paid, b.Invoiceable)
	b.AdvisorShare = percent(b.AdvisorTotal, b.HouseTotal)
	return b
}

// percent is part/whole*100, and 0 when whole is 0.
func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
