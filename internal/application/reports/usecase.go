// Package reports arma el reporte de ventas descargable en PDF.
package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/memimo/crm-api/internal/domain/repository"
)

// SaleRow línea del reporte: una compra con su cliente y total.
type SaleRow struct {
	Date     time.Time
	Customer string
	Items    int
	Total    decimal.Decimal
}

// SalesReport datos ya resueltos que consume el generador de PDF.
type SalesReport struct {
	From  time.Time
	To    time.Time
	Rows  []SaleRow
	Count int64
	Total decimal.Decimal
}

// PDFGenerator renderiza el reporte y devuelve los bytes del documento.
type PDFGenerator interface {
	GenerateSalesReport(ctx context.Context, report *SalesReport) ([]byte, error)
}

// UseCase reporte de ventas por rango de fechas.
type UseCase struct {
	sales     repository.SaleRepository
	customers repository.CustomerRepository
	pdf       PDFGenerator
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	sales repository.SaleRepository,
	customers repository.CustomerRepository,
	pdf PDFGenerator,
) *UseCase {
	return &UseCase{sales: sales, customers: customers, pdf: pdf}
}

// SalesPDF genera el PDF de ventas entre from y to (inclusive).
// Si to es cero se usa el momento actual.
func (uc *UseCase) SalesPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	if to.IsZero() {
		to = time.Now()
	}

	sales, err := uc.sales.ListSince(ctx, from)
	if err != nil {
		return nil, err
	}

	// Nombres de clientes en una sola consulta.
	ids := make([]string, 0, len(sales))
	seen := make(map[string]bool, len(sales))
	for _, s := range sales {
		if s.CustomerID != "" && !seen[s.CustomerID] {
			seen[s.CustomerID] = true
			ids = append(ids, s.CustomerID)
		}
	}
	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		customers, err := uc.customers.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, c := range customers {
			names[c.ID] = c.FullName()
		}
	}

	report := &SalesReport{From: from, To: to}
	for _, s := range sales {
		if s.Date.After(to) {
			continue
		}
		name := names[s.CustomerID]
		if name == "" {
			name = "Cliente general"
		}
		report.Rows = append(report.Rows, SaleRow{
			Date:     s.Date,
			Customer: name,
			Items:    len(s.Details),
			Total:    s.Total,
		})
		report.Count++
		report.Total = report.Total.Add(s.Total)
	}

	return uc.pdf.GenerateSalesReport(ctx, report)
}
