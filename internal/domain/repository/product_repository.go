package repository

import (
	"context"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// CategoryRepository catálogo de categorías de producto.
type CategoryRepository interface {
	ListActive(ctx context.Context) ([]*entity.Category, error)
}
