package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una compra (tabla compras). El total se calcula al crear la
// venta como la suma de los subtotales de sus líneas y no se recalcula después:
// si el precio del producto cambia, el histórico conserva el snapshot.
type Sale struct {
	ID         string
	CustomerID string
	Date       time.Time
	Total      decimal.Decimal
	CreatedAt  time.Time
	Details    []SaleDetail
}

// SaleDetail línea de una compra (tabla detalle_compra) con snapshot de precio.
type SaleDetail struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string // nombre del producto (join), solo lectura
	Quantity    int
	UnitPrice   decimal.Decimal // precio_unitario al momento de la venta
	Subtotal    decimal.Decimal // cantidad × precio_unitario
}
