package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/memimo/crm-api/internal/application/auth"
	"github.com/memimo/crm-api/internal/application/dto"
)

// Locals keys del perfil autenticado en Fiber.
const (
	LocalProfile = "perfil"
	LocalToken   = "token"
)

// SessionMiddleware valida el Bearer token contra la tabla de sesiones en cada
// petición. No hay validez local: el token es opaco y la autoridad es
// VerifySession, de modo que una sesión revocada muere en la petición
// siguiente. Si la sesión es válida deja el perfil en c.Locals.
func SessionMiddleware(sessions *auth.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		out, err := sessions.VerifySession(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		if out == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida o expirada"})
		}
		c.Locals(LocalProfile, &out.User)
		c.Locals(LocalToken, token)
		return c.Next()
	}
}

// RequireAdmin autoriza solo a usuarios con rol admin. Debe ir después de
// SessionMiddleware. Es el mismo guard puro de auth.Evaluate aplicado al
// transporte HTTP.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		profile := GetProfile(c)
		state := auth.SessionState{Profile: profile}
		if auth.RequiresAdmin(state) != auth.DecisionAllowed {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol admin"})
		}
		return c.Next()
	}
}

// GetProfile devuelve el perfil autenticado (después de SessionMiddleware).
func GetProfile(c *fiber.Ctx) *dto.UserProfile {
	v := c.Locals(LocalProfile)
	if v == nil {
		return nil
	}
	p, _ := v.(*dto.UserProfile)
	return p
}

// GetUserID devuelve el ID del usuario autenticado, o "" si no hay sesión.
func GetUserID(c *fiber.Ctx) string {
	if p := GetProfile(c); p != nil {
		return p.ID
	}
	return ""
}

// GetToken devuelve el token de la sesión actual.
func GetToken(c *fiber.Ctx) string {
	v := c.Locals(LocalToken)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// bearerToken extrae el token del header Authorization.
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
