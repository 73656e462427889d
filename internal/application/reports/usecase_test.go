package reports_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/reports"
	"github.com/memimo/crm-api/internal/domain/entity"
)

type stubSaleRepo struct {
	sales []*entity.Sale
}

func (r *stubSaleRepo) CreateHeader(ctx context.Context, s *entity.Sale) error { return nil }
func (r *stubSaleRepo) CreateDetail(ctx context.Context, d *entity.SaleDetail) error { return nil }
func (r *stubSaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return nil, nil
}
func (r *stubSaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	return nil, nil
}
func (r *stubSaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	return r.sales, nil
}

type stubCustomerRepo struct {
	customers []*entity.Customer
	idsSeen   []string
}

func (r *stubCustomerRepo) Create(ctx context.Context, c *entity.Customer) error { return nil }
func (r *stubCustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return nil, nil
}
func (r *stubCustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) { return nil, nil }
func (r *stubCustomerRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error) {
	r.idsSeen = ids
	return r.customers, nil
}
func (r *stubCustomerRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r *stubCustomerRepo) Update(ctx context.Context, c *entity.Customer) error { return nil }
func (r *stubCustomerRepo) Delete(ctx context.Context, id string) error          { return nil }

// capturePDF guarda el reporte recibido y devuelve bytes fijos.
type capturePDF struct {
	report *reports.SalesReport
}

func (g *capturePDF) GenerateSalesReport(ctx context.Context, report *reports.SalesReport) ([]byte, error) {
	g.report = report
	return []byte("%PDF-fake"), nil
}

func TestSalesPDF_ResuelveNombresYTotales(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, time.August, d, 12, 0, 0, 0, time.UTC)
	}
	sales := &stubSaleRepo{sales: []*entity.Sale{
		{
			ID: "v1", CustomerID: "c1", Date: day(3),
			Total:   decimal.RequireFromString("44.40"),
			Details: []entity.SaleDetail{{}, {}},
		},
		{
			ID: "v2", CustomerID: "c1", Date: day(10),
			Total:   decimal.RequireFromString("6.50"),
			Details: []entity.SaleDetail{{}},
		},
		{
			ID: "v3", CustomerID: "c-borrado", Date: day(12),
			Total: decimal.RequireFromString("10.00"),
		},
	}}
	customers := &stubCustomerRepo{customers: []*entity.Customer{
		{ID: "c1", FirstNames: "Lucía", LastNames: "Paredes"},
	}}
	pdf := &capturePDF{}
	uc := reports.NewUseCase(sales, customers, pdf)

	out, err := uc.SalesPDF(context.Background(), day(1), day(31))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), out)

	report := pdf.report
	require.NotNil(t, report)
	assert.Equal(t, int64(3), report.Count)
	assert.True(t, decimal.RequireFromString("60.90").Equal(report.Total),
		"total del reporte esperado 60.90, obtenido %s", report.Total)

	require.Len(t, report.Rows, 3)
	assert.Equal(t, "Lucía Paredes", report.Rows[0].Customer)
	assert.Equal(t, 2, report.Rows[0].Items)
	assert.Equal(t, "Cliente general", report.Rows[2].Customer,
		"una venta cuyo cliente ya no existe usa el nombre genérico")

	// El id del cliente repetido se consulta una sola vez.
	assert.Equal(t, []string{"c1", "c-borrado"}, customers.idsSeen)
}

// Las ventas posteriores al fin del rango se excluyen del reporte.
func TestSalesPDF_CortaEnElRango(t *testing.T) {
	sales := &stubSaleRepo{sales: []*entity.Sale{
		{ID: "v1", Date: time.Date(2026, 8, 5, 0, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("5.00")},
		{ID: "v2", Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Total: decimal.RequireFromString("7.00")},
	}}
	pdf := &capturePDF{}
	uc := reports.NewUseCase(sales, &stubCustomerRepo{}, pdf)

	_, err := uc.SalesPDF(context.Background(),
		time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC))
	require.NoError(t, err)

	require.NotNil(t, pdf.report)
	assert.Equal(t, int64(1), pdf.report.Count)
	assert.True(t, decimal.RequireFromString("5.00").Equal(pdf.report.Total))
}
