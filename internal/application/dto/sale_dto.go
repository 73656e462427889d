package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest una línea del carrito: producto y cantidad.
// El precio unitario se toma del catálogo al momento de crear la venta.
type SaleLineRequest struct {
	ProductID string `json:"producto_id" validate:"required,uuid"`
	Quantity  int    `json:"cantidad" validate:"required,min=1"`
}

// CreateSaleRequest entrada para registrar una compra.
type CreateSaleRequest struct {
	CustomerID string            `json:"cliente_id" validate:"required,uuid"`
	Lines      []SaleLineRequest `json:"detalles" validate:"required,min=1"`
}

// SaleLineResponse línea de compra con snapshot de precio.
type SaleLineResponse struct {
	ProductID string          `json:"producto_id"`
	Product   string          `json:"producto,omitempty"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una compra.
type SaleResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"cliente_id"`
	Date       time.Time          `json:"fecha"`
	Total      decimal.Decimal    `json:"total"`
	Lines      []SaleLineResponse `json:"detalles,omitempty"`
}
