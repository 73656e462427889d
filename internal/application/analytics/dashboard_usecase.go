// Package analytics arma las estadísticas del dashboard y los reportes a
// partir de consultas agregadas en la base de datos.
package analytics

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// DashboardUseCase estadísticas del tablero principal.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats calcula: total de clientes, ventas del mes en curso, ticket promedio,
// top de productos por cantidad vendida y respuestas por campaña.
func (uc *DashboardUseCase) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	monthStart := startOfMonth(time.Now())

	totalCustomers, err := uc.repo.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	monthSales, err := uc.repo.SalesTotalSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	saleCount, err := uc.repo.CountSalesSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	top, err := uc.repo.TopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	campaigns, err := uc.repo.CampaignResponses(ctx)
	if err != nil {
		return nil, err
	}

	avg := decimal.Zero
	if saleCount > 0 {
		avg = monthSales.Div(decimal.NewFromInt(saleCount)).Round(2)
	}

	out := &dto.DashboardResponse{
		TotalCustomers: totalCustomers,
		MonthSales:     monthSales,
		MonthSaleCount: saleCount,
		AverageTicket:  avg,
	}
	for _, p := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProductItem{
			ProductID: p.ProductID,
			Name:      p.Name,
			Quantity:  p.Quantity,
		})
	}
	for _, c := range campaigns {
		out.Campaigns = append(out.Campaigns, dto.CampaignStatsItem{
			CampaignID: c.CampaignID,
			Name:       c.Name,
			Assigned:   c.Assigned,
			Responded:  c.Responded,
		})
	}
	return out, nil
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
