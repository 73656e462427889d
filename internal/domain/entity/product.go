package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo (tabla productos).
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta, no negativo
	CategoryID   string
	CategoryName string // nombre de la categoría (join), solo lectura
	Available    bool   // disponible
	IsTopping    bool   // es_topping: se vende como agregado de otro producto
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category categoría de producto (tabla categorias_producto).
type Category struct {
	ID     string
	Name   string
	Active bool
}
