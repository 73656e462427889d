package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct producto con su cantidad total vendida, para el dashboard.
type TopProduct struct {
	ProductID string
	Name      string
	Quantity  int64
}

// CampaignResponseCount respuestas por campaña (flag respondio en campana_clientes).
type CampaignResponseCount struct {
	CampaignID string
	Name       string
	Assigned   int64
	Responded  int64
}

// AnalyticsRepository consultas agregadas para dashboard y reportes.
// Son lecturas puras; la escritura vive en los repositorios de cada entidad.
type AnalyticsRepository interface {
	CountCustomers(ctx context.Context) (int64, error)
	SalesTotalSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	CountSalesSince(ctx context.Context, since time.Time) (int64, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	CampaignResponses(ctx context.Context) ([]CampaignResponseCount, error)
}
