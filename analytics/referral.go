package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rpconseil/dossiers_end/models"
)

// MaxLagDays bounds both sponsorship lags and administrative cycles; longer
// spans come from stale or mistyped dates.
const MaxLagDays = 1000

// ReferralEdge links a sponsor to a client it brought in.
type ReferralEdge struct {
	Sponsor      string    `json:"sponsor"`
	Godchild     string    `json:"godchild"`
	SponsorDate  time.Time `json:"sponsorDate"`
	GodchildDate time.Time `json:"godchildDate"`
	LagDays      int       `json:"lagDays"`
}

// SponsorScore is one row of the sponsor leaderboard.
type SponsorScore struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	CAPerso float64 `json:"caPerso"`
}

// NormalizeName is the key used to match a sponsor field to a client name.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// EarliestSaleIndex maps each normalised client display name to the earliest
// parseable sale date of that client. Clients sharing a display name share
// one entry holding the earliest date of all of them.
func EarliestSaleIndex(clients []models.Client, sales []models.Sale) map[string]time.Time {
	return earliestIndex(clients, salesByClient(clients, sales))
}

func earliestIndex(clients []models.Client, buckets [][]models.Sale) map[string]time.Time {
	index := make(map[string]time.Time, len(clients))
	for i, c := range clients {
		first, ok := earliestDate(buckets[i])
		if !ok {
			continue
		}
		key := NormalizeName(c.DisplayName())
		if prev, seen := index[key]; !seen || first.Before(prev) {
			index[key] = first
		}
	}
	return index
}

func earliestDate(sales []models.Sale) (time.Time, bool) {
	var first time.Time
	found := false
	for _, s := range sales {
		if d, ok := ParseDate(s.DateVente); ok && (!found || d.Before(first)) {
			first = d
			found = true
		}
	}
	return first, found
}

// ReferralEdges infers sponsor -> client links from the free-text sponsor
// field of each client's sales. A client gets at most one edge: the first of
// its sales whose sponsor resolves to a known client that started strictly
// earlier, within MaxLagDays.
func ReferralEdges(clients []models.Client, sales []models.Sale) []ReferralEdge {
	buckets := salesByClient(clients, sales)
	index := earliestIndex(clients, buckets)

	var edges []ReferralEdge
	for i, c := range clients {
		godchildDate, ok := index[NormalizeName(c.DisplayName())]
		if !ok {
			continue
		}
		for _, s := range buckets[i] {
			sponsorKey := NormalizeName(s.Parrain)
			if sponsorKey == "" {
				continue
			}
			sponsorDate, ok := index[sponsorKey]
			if !ok || !godchildDate.After(sponsorDate) {
				continue
			}
			lag := DaysBetween(sponsorDate, godchildDate)
			if lag <= 0 || lag >= MaxLagDays {
				continue
			}
			edges = append(edges, ReferralEdge{
				Sponsor:      strings.TrimSpace(s.Parrain),
				Godchild:     c.DisplayName(),
				SponsorDate:  sponsorDate,
				GodchildDate: godchildDate,
				LagDays:      lag,
			})
			break
		}
	}
	return edges
}

// SponsorshipLag is the mean lag of edges in days, to one decimal; 0 without edges.
func SponsorshipLag(edges []ReferralEdge) float64 {
	if len(edges) == 0 {
		return 0
	}
	total := 0
	for _, e := range edges {
		total += e.LagDays
	}
	return math.Round(float64(total)/float64(len(edges))*10) / 10
}

// SponsorLeaderboard ranks sponsors by the CA perso of the sales they
// brought, then by sale count. topN <= 0 keeps every sponsor.
func SponsorLeaderboard(sales []models.Sale, topN int) []SponsorScore {
	byKey := make(map[string]*SponsorScore)
	var order []string
	for _, s := range sales {
		key := NormalizeName(s.Parrain)
		if key == "" {
			continue
		}
		score, ok := byKey[key]
		if !ok {
			score = &SponsorScore{Name: strings.TrimSpace(s.Parrain)}
			byKey[key] = score
			order = append(order, key)
		}
		score.Count++
		score.CAPerso += ParseCurrency(s.CAPerso)
	}

	out := make([]SponsorScore, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CAPerso != out[j].CAPerso {
			return out[i].CAPerso > out[j].CAPerso
		}
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
