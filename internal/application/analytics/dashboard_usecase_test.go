package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/analytics"
	"github.com/memimo/crm-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	customers  int64
	salesTotal decimal.Decimal
	saleCount  int64
	top        []repository.TopProduct
	campaigns  []repository.CampaignResponseCount

	sinceSeen time.Time
	limitSeen int
}

func (r *fakeAnalyticsRepo) CountCustomers(ctx context.Context) (int64, error) {
	return r.customers, nil
}
func (r *fakeAnalyticsRepo) SalesTotalSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	r.sinceSeen = since
	return r.salesTotal, nil
}
func (r *fakeAnalyticsRepo) CountSalesSince(ctx context.Context, since time.Time) (int64, error) {
	return r.saleCount, nil
}
func (r *fakeAnalyticsRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	r.limitSeen = limit
	return r.top, nil
}
func (r *fakeAnalyticsRepo) CampaignResponses(ctx context.Context) ([]repository.CampaignResponseCount, error) {
	return r.campaigns, nil
}

func TestStats_TicketPromedio(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		customers:  120,
		salesTotal: decimal.RequireFromString("350.00"),
		saleCount:  7,
		top: []repository.TopProduct{
			{ProductID: "p1", Name: "Cono doble", Quantity: 41},
		},
		campaigns: []repository.CampaignResponseCount{
			{CampaignID: "c1", Name: "Semana del chocolate", Assigned: 30, Responded: 12},
		},
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(120), out.TotalCustomers)
	assert.Equal(t, int64(7), out.MonthSaleCount)
	assert.True(t, decimal.RequireFromString("50.00").Equal(out.AverageTicket),
		"ticket promedio esperado 50.00, obtenido %s", out.AverageTicket)

	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, int64(41), out.TopProducts[0].Quantity)
	require.Len(t, out.Campaigns, 1)
	assert.Equal(t, int64(12), out.Campaigns[0].Responded)

	assert.Equal(t, 10, repo.limitSeen, "el top de productos se limita a 10")

	// Las métricas mensuales se cortan al inicio del mes en curso.
	now := time.Now()
	assert.Equal(t, 1, repo.sinceSeen.Day())
	assert.Equal(t, now.Month(), repo.sinceSeen.Month())
	assert.Equal(t, now.Year(), repo.sinceSeen.Year())
}

// Sin ventas en el mes el promedio es cero, nunca una división por cero.
func TestStats_SinVentasDelMes(t *testing.T) {
	repo := &fakeAnalyticsRepo{salesTotal: decimal.Zero, saleCount: 0}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, out.AverageTicket.IsZero())
	assert.True(t, out.MonthSales.IsZero())
}

// El promedio se redondea a dos decimales (céntimos de sol).
func TestStats_PromedioRedondeado(t *testing.T) {
	repo := &fakeAnalyticsRepo{
		salesTotal: decimal.RequireFromString("100.00"),
		saleCount:  3,
	}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("33.33").Equal(out.AverageTicket),
		"promedio esperado 33.33, obtenido %s", out.AverageTicket)
}
