package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleEstandar = "estandar"
)

// User representa un usuario del sistema (operador del CRM).
// Los usuarios nunca se eliminan: solo se desactivan (Active = false), lo que
// además revoca todas sus sesiones.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	RoleID       string
	RoleName     string // nombre del rol (join con roles), "admin" | "estandar"
	Active       bool
	LastAccess   *time.Time
	CreatedBy    *string // usuario que lo creó (admin); nil para la cuenta semilla
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene el rol administrador.
func (u *User) IsAdmin() bool { return u.RoleName == RoleAdmin }

// Role catálogo de roles (tabla roles).
type Role struct {
	ID     string
	Name   string
	Active bool
}
