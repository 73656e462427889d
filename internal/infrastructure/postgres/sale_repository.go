package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de compras. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// CreateHeader persiste la cabecera de una compra.
func (r *SaleRepo) CreateHeader(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO compras (id, cliente_id, fecha, total, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CustomerID, sale.Date, sale.Total, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert compra: %w", err)
	}
	return nil
}

// CreateDetail persiste una línea de compra con su snapshot de precio.
func (r *SaleRepo) CreateDetail(ctx context.Context, detail *entity.SaleDetail) error {
	query := `
		INSERT INTO detalle_compra (id, compra_id, producto_id, cantidad, precio_unitario, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		detail.ID, detail.SaleID, detail.ProductID,
		detail.Quantity, detail.UnitPrice, detail.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert detalle compra: %w", err)
	}
	return nil
}

// GetByID obtiene una compra con sus líneas. Devuelve nil sin error si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `SELECT id, cliente_id, fecha, total, created_at FROM compras WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CustomerID, &s.Date, &s.Total, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get compra: %w", err)
	}
	if err := r.loadDetails(ctx, []*entity.Sale{&s}); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListByCustomer lista las compras de un cliente, más recientes primero.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	query := `
		SELECT id, cliente_id, fecha, total, created_at
		FROM compras WHERE cliente_id = $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list compras by cliente: %w", err)
	}
	defer rows.Close()
	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// ListSince lista las compras con fecha >= since, más recientes primero.
func (r *SaleRepo) ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, cliente_id, fecha, total, created_at
		FROM compras WHERE fecha >= $1 ORDER BY fecha DESC`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list compras since: %w", err)
	}
	defer rows.Close()
	sales, err := scanSales(rows)
	if err != nil {
		return nil, err
	}
	if err := r.loadDetails(ctx, sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// loadDetails carga en bloque las líneas de un conjunto de compras.
func (r *SaleRepo) loadDetails(ctx context.Context, sales []*entity.Sale) error {
	if len(sales) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Sale, len(sales))
	ids := make([]string, 0, len(sales))
	for _, s := range sales {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	query := `
		SELECT d.id, d.compra_id, d.producto_id, p.nombre, d.cantidad, d.precio_unitario, d.subtotal
		FROM detalle_compra d JOIN productos p ON p.id = d.producto_id
		WHERE d.compra_id = ANY($1)
		ORDER BY d.id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("list detalle compra: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d entity.SaleDetail
		if err := rows.Scan(
			&d.ID, &d.SaleID, &d.ProductID, &d.ProductName,
			&d.Quantity, &d.UnitPrice, &d.Subtotal,
		); err != nil {
			return fmt.Errorf("scan detalle compra: %w", err)
		}
		if s, ok := byID[d.SaleID]; ok {
			s.Details = append(s.Details, d)
		}
	}
	return rows.Err()
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.CustomerID, &s.Date, &s.Total, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan compra: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
