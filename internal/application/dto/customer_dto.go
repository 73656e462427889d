package dto

import "time"

// CreateCustomerRequest entrada para crear/actualizar un cliente.
// Solo nombres es obligatorio; dni, celular y email son opcionales.
type CreateCustomerRequest struct {
	FirstNames string `json:"nombres" validate:"required,min=1,max=200"`
	LastNames  string `json:"apellidos" validate:"omitempty,max=200"`
	DNI        string `json:"dni" validate:"omitempty,max=20"`
	Phone      string `json:"celular" validate:"omitempty,max=20"`
	Email      string `json:"email" validate:"omitempty,email"`
	Address    string `json:"direccion"`
	BirthDate  string `json:"fecha_nacimiento"` // YYYY-MM-DD, opcional
	Notes      string `json:"notas"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID           string     `json:"id"`
	FirstNames   string     `json:"nombres"`
	LastNames    string     `json:"apellidos"`
	DNI          string     `json:"dni,omitempty"`
	Phone        string     `json:"celular,omitempty"`
	Email        string     `json:"email,omitempty"`
	Address      string     `json:"direccion,omitempty"`
	BirthDate    *time.Time `json:"fecha_nacimiento,omitempty"`
	Notes        string     `json:"notas,omitempty"`
	RegisteredAt time.Time  `json:"fecha_registro"`
}
