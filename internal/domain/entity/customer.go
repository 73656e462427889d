package entity

import "time"

// Customer representa un cliente de la heladería (tabla clientes).
// Fuera del ID no se exige unicidad: DNI, celular y email son opcionales.
type Customer struct {
	ID           string
	FirstNames   string // nombres
	LastNames    string // apellidos
	DNI          string
	Phone        string // celular
	Email        string
	Address      string
	BirthDate    *time.Time
	Notes        string
	RegisteredAt time.Time // fecha_registro
}

// FullName devuelve "nombres apellidos" para mensajes y reportes.
func (c *Customer) FullName() string {
	if c.LastNames == "" {
		return c.FirstNames
	}
	return c.FirstNames + " " + c.LastNames
}
