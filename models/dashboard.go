package models

// ChartDataItem is one bar or slice of a breakdown chart.
type ChartDataItem struct {
	Name  string  `json:"name"`
	Value int     `json:"value"`
	CA    float64 `json:"ca"`
}

// YearlyCAItem is one point of the dashboard revenue chart.
type YearlyCAItem struct {
	Year      int     `json:"year"`
	CAGeneral float64 `json:"caGeneral"`
	CAPerso   float64 `json:"caPerso"`
}

// RecentSaleItem is a row of the "latest sales" panel.
type RecentSaleItem struct {
	ID        string `json:"id"`
	Numero    int    `json:"numero"`
	ClientNom string `json:"clientNom"`
	Produit   string `json:"produit"`
	Annee     int    `json:"annee"`
	CAGeneral string `json:"caGeneral"`
}

// DashboardDataResponse is the overview page payload.
type DashboardDataResponse struct {
	TotalCAGeneral float64 `json:"totalCAGeneral"`
	TotalCAPerso   float64 `json:"totalCAPerso"`
	ClientCount    int     `json:"clientCount"`
	SaleCount      int     `json:"saleCount"`

	// formatted for display, fr-FR
	TotalCAGeneralLabel string `json:"totalCAGeneralLabel"`
	TotalCAPersoLabel   string `json:"totalCAPersoLabel"`

	YearlyCA    []YearlyCAItem   `json:"yearlyCA"`
	RecentSales []RecentSaleItem `json:"recentSales"`
}
