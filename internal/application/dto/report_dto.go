package dto

import "github.com/shopspring/decimal"

// DashboardResponse estadísticas del tablero principal.
type DashboardResponse struct {
	TotalCustomers int64               `json:"total_clientes"`
	MonthSales     decimal.Decimal     `json:"total_ventas_mes"`
	MonthSaleCount int64               `json:"compras_mes"`
	AverageTicket  decimal.Decimal     `json:"promedio_ticket"`
	TopProducts    []TopProductItem    `json:"top_productos"`
	Campaigns      []CampaignStatsItem `json:"campanas"`
}

// TopProductItem producto con cantidad vendida.
type TopProductItem struct {
	ProductID string `json:"producto_id"`
	Name      string `json:"nombre"`
	Quantity  int64  `json:"cantidad"`
}

// CampaignStatsItem asignados vs respuestas por campaña.
type CampaignStatsItem struct {
	CampaignID string `json:"campana_id"`
	Name       string `json:"nombre"`
	Assigned   int64  `json:"asignados"`
	Responded  int64  `json:"respondieron"`
}
