package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpconseil/dossiers_end/models"
)

func referenceYear(n int, year int, caPerso string) []models.Sale {
	sales := make([]models.Sale, 0, n)
	for i := 0; i < n; i++ {
		typ := models.SaleTypeParrainage
		if i%2 == 0 {
			typ = models.SaleTypeFiche
		}
		sales = append(sales, models.Sale{
			Annee:     year,
			Type:      typ,
			Statut:    models.SaleStatusPaid,
			CAPerso:   caPerso,
			CAGeneral: "3 000,00 €",
			DateVente: "15/03/2023",
		})
	}
	return sales
}

func TestReferenceStats(t *testing.T) {
	sales := referenceYear(10, 2023, "1 000,00 €")
	sales = append(sales,
		models.Sale{Annee: 2023, Type: "F", Statut: models.SaleStatusCancelled, CAPerso: "99 999"},
		models.Sale{Annee: 2022, Type: "F", CAPerso: "5"},
	)

	stats := ReferenceStats(sales, 0)
	assert.Equal(t, 2023, stats.Year)
	assert.Equal(t, 10, stats.SaleCount)
	assert.Equal(t, 10000.0, stats.TotalCAPerso)
	assert.Equal(t, 1000.0, stats.AvgCAPerso)
	assert.Equal(t, 3000.0, stats.AvgCAGeneral)
	assert.Equal(t, 50.0, stats.FichePct)

	older := ReferenceStats(sales, 2022)
	assert.Equal(t, 1, older.SaleCount)
	assert.Equal(t, 100.0, older.FichePct)
}

func TestReferenceStats_EmptyYear(t *testing.T) {
	stats := ReferenceStats(nil, 2030)
	assert.Equal(t, BaseStats{Year: 2030}, stats)
}

func TestSimulate_CountOverride(t *testing.T) {
	sales := referenceYear(10, 2023, "1 000,00 €")
	count := 20

	sim := Simulate(sales, SimulationInput{Count: &count})
	assert.Equal(t, 2024, sim.ProjectedYear)
	assert.Equal(t, 20000.0, sim.TotalCAPerso)
	assert.Equal(t, 100.0, sim.GrowthCAPerso)
	assert.Equal(t, 60000.0, sim.TotalCAGeneral)
	assert.Equal(t, 100.0, sim.GrowthCAGeneral)
	assert.Equal(t, 10, sim.FicheCount)
	assert.Equal(t, 10, sim.ParrainageCount)
}

func TestSimulate_DefaultsReproduceReference(t *testing.T) {
	sales := referenceYear(10, 2023, "1 000,00 €")
	sim := Simulate(sales, SimulationInput{})
	assert.Equal(t, 10, sim.Count)
	assert.Equal(t, sim.Reference.TotalCAPerso, sim.TotalCAPerso)
	assert.Equal(t, 0.0, sim.GrowthCAPerso)
}

func TestSimulate_SplitAndClamping(t *testing.T) {
	sales := referenceYear(4, 2023, "100")
	count := 20
	pct := 33.0
	sim := Simulate(sales, SimulationInput{Count: &count, FichePct: &pct})
	assert.Equal(t, 7, sim.FicheCount)
	assert.Equal(t, 13, sim.ParrainageCount)

	negative := -5
	tooHigh := 140.0
	sim = Simulate(sales, SimulationInput{Count: &negative, FichePct: &tooHigh})
	assert.Equal(t, 0, sim.Count)
	assert.Equal(t, 100.0, sim.FichePct)
	assert.Equal(t, 0.0, sim.TotalCAPerso)
}

func TestSimulate_ZeroReferenceGivesZeroGrowth(t *testing.T) {
	count := 12
	avg := 2500.0
	sim := Simulate(nil, SimulationInput{Count: &count, AvgCAPerso: &avg})
	assert.Equal(t, 30000.0, sim.TotalCAPerso)
	assert.Equal(t, 0.0, sim.GrowthCAPerso)
	assert.Equal(t, 0.0, sim.GrowthCAGeneral)
}

func TestSimulate_MonthlyUsesSeasonalWeights(t *testing.T) {
	sales := referenceYear(10, 2023, "1 000,00 €")
	count := 20
	sim := Simulate(sales, SimulationInput{Count: &count})

	require.Len(t, sim.Monthly, 12)
	assert.Equal(t, 3, sim.Monthly[2].Month)
	assert.Equal(t, 1.0, sim.Monthly[2].Weight)
	assert.Equal(t, 20000.0, sim.Monthly[2].CAPerso)
	assert.Equal(t, 20.0, sim.Monthly[2].SaleCount)
	assert.Equal(t, 0.0, sim.Monthly[0].CAPerso)
}

func TestSeasonalWeights(t *testing.T) {
	uniform := SeasonalWeights(nil)
	for _, w := range uniform {
		assert.InDelta(t, 1.0/12, w, 1e-12)
	}

	sales := []models.Sale{
		{DateVente: "01/01/2022"},
		{DateVente: "01/01/2023"},
		{DateVente: "01/06/2022"},
		{DateVente: "01/06/2022", Statut: models.SaleStatusCancelled},
		{DateVente: "plus tard"},
	}
	weights := SeasonalWeights(sales)
	assert.InDelta(t, 2.0/3, weights[0], 1e-12)
	assert.InDelta(t, 1.0/3, weights[5], 1e-12)

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
}
