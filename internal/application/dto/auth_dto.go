package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserProfile perfil del usuario autenticado. Es la misma forma que devuelve
// Login y VerifySession; los tags conservan el contrato en español del cliente.
type UserProfile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Role      string `json:"rol"`
	Active    bool   `json:"activo"`
}

// LoginResponse salida de login: perfil + token de sesión opaco + expiración.
type LoginResponse struct {
	User    UserProfile `json:"user"`
	Token   string      `json:"token"`
	Expires time.Time   `json:"expira"`
}
