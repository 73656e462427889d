package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountCustomers total de clientes registrados.
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountCustomers: %w", err)
	}
	return n, nil
}

// SalesTotalSince suma de totales de compras con fecha >= since.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) SalesTotalSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM compras WHERE fecha >= $1`, since,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.SalesTotalSince: %w", err)
	}
	return total, nil
}

// CountSalesSince número de compras con fecha >= since.
func (r *AnalyticsRepo) CountSalesSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM compras WHERE fecha >= $1`, since,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountSalesSince: %w", err)
	}
	return n, nil
}

// TopProducts devuelve los `limit` productos con mayor cantidad vendida.
func (r *AnalyticsRepo) TopProducts(ctx context.Context, limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    p.id               AS producto_id,
	    p.nombre           AS nombre,
	    SUM(d.cantidad)    AS cantidad
	FROM detalle_compra d
	JOIN productos p ON p.id = d.producto_id
	GROUP BY p.id, p.nombre
	ORDER BY cantidad DESC
	LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var row repository.TopProduct
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity); err != nil {
			return nil, fmt.Errorf("analytics.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CampaignResponses asignados y respuestas por campaña.
// Las campañas sin asignaciones no aparecen en el resultado.
func (r *AnalyticsRepo) CampaignResponses(ctx context.Context) ([]repository.CampaignResponseCount, error) {
	const query = `
	SELECT
	    c.id                                            AS campana_id,
	    c.nombre                                        AS nombre,
	    COUNT(cc.id)                                    AS asignados,
	    COUNT(cc.id) FILTER (WHERE cc.respondio)        AS respondieron
	FROM campanas c
	JOIN campana_clientes cc ON cc.campana_id = c.id
	GROUP BY c.id, c.nombre
	ORDER BY asignados DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CampaignResponses: %w", err)
	}
	defer rows.Close()

	var results []repository.CampaignResponseCount
	for rows.Next() {
		var row repository.CampaignResponseCount
		if err := rows.Scan(&row.CampaignID, &row.Name, &row.Assigned, &row.Responded); err != nil {
			return nil, fmt.Errorf("analytics.CampaignResponses scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
