package repository

import (
	"context"
	"time"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// La creación de cabecera y detalle ocurre dentro de una misma transacción
// (ver postgres.TxRunner).
type SaleRepository interface {
	CreateHeader(ctx context.Context, sale *entity.Sale) error
	CreateDetail(ctx context.Context, detail *entity.SaleDetail) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	ListSince(ctx context.Context, since time.Time) ([]*entity.Sale, error)
}
