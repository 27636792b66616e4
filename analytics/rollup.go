package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/rpconseil/dossiers_end/models"
)

// ClientSummary is a client with the figures derived from its sales.
type ClientSummary struct {
	Client       models.Client `json:"client"`
	DisplayName  string        `json:"displayName"`
	Sales        []models.Sale `json:"sales"`
	SaleCount    int           `json:"saleCount"`
	TotalCA      float64       `json:"totalCA"`
	TotalCAPerso float64       `json:"totalCAPerso"`
	LastSaleDate *time.Time    `json:"lastSaleDate,omitempty"`
}

// IsCancelled reports a cancelled sale: its status contains "annul" in any case.
func IsCancelled(status string) bool {
	return strings.Contains(strings.ToLower(status), "annul")
}

// RollupClients summarises every client and orders them by most recent sale,
// then by entry date, both descending. Clients without a dated sale come last.
func RollupClients(clients []models.Client, sales []models.Sale) []ClientSummary {
	buckets := salesByClient(clients, sales)

	summaries := make([]ClientSummary, len(clients))
	entries := make([]time.Time, len(clients))
	for i, c := range clients {
		summaries[i] = SummarizeClient(c, buckets[i])
		entries[i] = clientEntryDate(c)
	}

	order := make([]int, len(clients))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := summaries[order[a]], summaries[order[b]]
		switch {
		case sa.LastSaleDate == nil && sb.LastSaleDate != nil:
			return false
		case sa.LastSaleDate != nil && sb.LastSaleDate == nil:
			return true
		case sa.LastSaleDate != nil && !sa.LastSaleDate.Equal(*sb.LastSaleDate):
			return sa.LastSaleDate.After(*sb.LastSaleDate)
		}
		ea, eb := entries[order[a]], entries[order[b]]
		if !ea.Equal(eb) {
			return ea.After(eb)
		}
		return sa.DisplayName < sb.DisplayName
	})

	sorted := make([]ClientSummary, len(order))
	for i, idx := range order {
		sorted[i] = summaries[idx]
	}
	return sorted
}

// SummarizeClient totals the non-cancelled revenue of sales, which must all
// belong to client. Cancelled sales still count toward SaleCount.
func SummarizeClient(client models.Client, sales []models.Sale) ClientSummary {
	summary := ClientSummary{
		Client:      client,
		DisplayName: client.DisplayName(),
		Sales:       sales,
		SaleCount:   len(sales),
	}
	if summary.Sales == nil {
		summary.Sales = []models.Sale{}
	}

	var last time.Time
	hasDate := false
	for _, s := range sales {
		if !IsCancelled(s.Statut) {
			summary.TotalCA += ParseCurrency(s.CAGeneral)
			summary.TotalCAPerso += ParseCurrency(s.CAPerso)
		}
		if d, ok := ParseDate(s.DateVente); ok && (!hasDate || d.After(last)) {
			last = d
			hasDate = true
		}
	}
	if hasDate {
		summary.LastSaleDate = &last
	}
	return summary
}

// FilterClients keeps summaries whose display name contains keyword, ignoring case.
func FilterClients(summaries []ClientSummary, keyword string) []ClientSummary {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	out := make([]ClientSummary, 0, len(summaries))
	for _, s := range summaries {
		if keyword == "" || strings.Contains(strings.ToLower(s.DisplayName), keyword) {
			out = append(out, s)
		}
	}
	return out
}

// salesByClient joins sales to clients. A sale joins by ClientID; a sale
// without one joins the first client whose display name equals ClientNom.
// Sales matching no client are dropped.
func salesByClient(clients []models.Client, sales []models.Sale) [][]models.Sale {
	byID := make(map[string]int, len(clients))
	byName := make(map[string]int, len(clients))
	for i, c := range clients {
		if !c.ID.IsZero() {
			byID[c.ID.Hex()] = i
		}
		name := c.DisplayName()
		if _, seen := byName[name]; !seen {
			byName[name] = i
		}
	}

	buckets := make([][]models.Sale, len(clients))
	for _, s := range sales {
		var (
			idx int
			ok  bool
		)
		if s.ClientID != "" {
			idx, ok = byID[s.ClientID]
		} else {
			idx, ok = byName[strings.TrimSpace(s.ClientNom)]
		}
		if ok {
			buckets[idx] = append(buckets[idx], s)
		}
	}
	return buckets
}

// clientEntryDate reads DateEntree as D/M/YYYY, YYYY or ISO, falling back to CreatedAt.
func clientEntryDate(c models.Client) time.Time {
	if d, ok := ParseDate(c.DateEntree); ok {
		return d
	}
	raw := strings.TrimSpace(c.DateEntree)
	if len(raw) >= 10 {
		if d, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return d
		}
	}
	return c.CreatedAt
}
