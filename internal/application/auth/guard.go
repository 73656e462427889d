package auth

import (
	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain/entity"
)

// SessionState estado observable de la sesión para el guard de acceso.
// Restoring=true mientras la restauración inicial (VerifySession del token
// guardado) sigue en vuelo; Profile=nil significa no autenticado.
type SessionState struct {
	Restoring bool
	Profile   *dto.UserProfile
}

// Decision resultado del guard para una vista protegida.
type Decision int

const (
	// DecisionLoading la restauración de sesión sigue en vuelo; mostrar espera.
	DecisionLoading Decision = iota
	// DecisionLogin no hay sesión válida; redirigir al login.
	DecisionLogin
	// DecisionDenied sesión válida pero rol insuficiente; redirigir al inicio.
	DecisionDenied
	// DecisionAllowed acceso concedido; renderizar el contenido protegido.
	DecisionAllowed
)

// Evaluate es el guard de acceso: función pura de (estado de sesión, rol
// requerido) a decisión de render. requiredRole vacío = basta estar
// autenticado. No hay transición de vuelta a Loading: una vez resuelta la
// restauración, el estado solo cambia con un nuevo login/logout.
func Evaluate(state SessionState, requiredRole string) Decision {
	if state.Restoring {
		return DecisionLoading
	}
	if state.Profile == nil || !state.Profile.Active {
		return DecisionLogin
	}
	if requiredRole != "" && state.Profile.Role != requiredRole {
		return DecisionDenied
	}
	return DecisionAllowed
}

// RequiresAdmin azúcar para el caso común de pantallas solo-admin.
func RequiresAdmin(state SessionState) Decision {
	return Evaluate(state, entity.RoleAdmin)
}
