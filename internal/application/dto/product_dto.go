package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"nombre" validate:"required,min=1,max=200"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio" validate:"required"`
	CategoryID  string          `json:"categoria_id" validate:"required,uuid"`
	Available   bool            `json:"disponible"`
	IsTopping   bool            `json:"es_topping"`
}

// UpdateProductRequest entrada para actualizar un producto (campos opcionales).
type UpdateProductRequest struct {
	Name        *string          `json:"nombre"`
	Description *string          `json:"descripcion"`
	Price       *decimal.Decimal `json:"precio"`
	CategoryID  *string          `json:"categoria_id"`
	Available   *bool            `json:"disponible"`
	IsTopping   *bool            `json:"es_topping"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Description string          `json:"descripcion,omitempty"`
	Price       decimal.Decimal `json:"precio"`
	CategoryID  string          `json:"categoria_id"`
	Category    string          `json:"categoria,omitempty"`
	Available   bool            `json:"disponible"`
	IsTopping   bool            `json:"es_topping"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CategoryResponse una categoría activa.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}
