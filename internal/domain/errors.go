package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")

	// Autenticación y sesiones.
	ErrUserNotFound         = errors.New("usuario no encontrado")
	ErrInvalidCredentials   = errors.New("contraseña incorrecta")
	ErrUserInactive         = errors.New("usuario inactivo")
	ErrSessionError         = errors.New("error al crear sesión")
	ErrEmailAlreadyExists   = errors.New("el email ya está registrado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrCannotDeactivateSelf = errors.New("no puedes desactivarte a ti mismo")

	// Campañas.
	ErrChannelNotConfigured = errors.New("canal de envío no configurado")
	ErrRecipientNoEmail     = errors.New("sin email registrado")
)
