package entity

import "time"

// Session representa una sesión autenticada (tabla sesiones).
// El token es un identificador opaco (UUID v4); una sesión es inválida cuando
// now > ExpiresAt o cuando su usuario dueño está inactivo.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	UserAgent string
	IPAddress string
	CreatedAt time.Time
}

// Expired indica si la sesión ya venció respecto a now.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// AuthLog registro de auditoría de intentos de login (tabla logs_autenticacion).
// Se escribe en cada intento, exitoso o no; su inserción es best-effort y nunca
// bloquea el flujo de login.
type AuthLog struct {
	ID        string
	Email     string
	Success   bool
	Message   string
	UserAgent string
	CreatedAt time.Time
}
