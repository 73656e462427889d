package repository

import (
	"context"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// A diferencia de los usuarios, los clientes sí se eliminan físicamente.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error)
	// Search busca por nombres, apellidos, dni o celular (ilike).
	Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
}
