package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"nombre" validate:"required,min=1,max=200"`
	LastName  string `json:"apellido" validate:"omitempty,max=200"`
	RoleID    string `json:"rol_id" validate:"required,uuid"`
}

// UpdateUserRequest entrada para actualizar un usuario (sin password ni email).
type UpdateUserRequest struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellido"`
	RoleID    *string `json:"rol_id"`
	Active    *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"nombre"`
	LastName   string     `json:"apellido"`
	Role       string     `json:"rol"`
	Active     bool       `json:"activo"`
	LastAccess *time.Time `json:"ultimo_acceso,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// RoleResponse un rol del catálogo.
type RoleResponse struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}
