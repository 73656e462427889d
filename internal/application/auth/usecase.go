// Package auth implementa el ciclo de vida de sesiones del CRM: login con
// bcrypt, tokens opacos persistidos en la tabla sesiones, verificación de
// sesión en cada acceso y barrido periódico de sesiones vencidas.
//
// El token NO es un JWT: es un UUID opaco cuya validez vive en la base de
// datos, lo que permite revocación inmediata (logout, desactivación de
// usuario) sin esperar ninguna expiración de firma.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
	"github.com/memimo/crm-api/pkg/logger"
)

// Costo bcrypt alineado con los hashes ya existentes en la tabla usuarios.
const bcryptCost = 10

// Config parámetros del ciclo de sesión.
type Config struct {
	SessionDuration time.Duration // vida de la sesión desde el login (24h)
}

// SessionService caso de uso de autenticación: login, logout, verificación y
// limpieza de sesiones. Es el único dueño del estado de sesión; el resto de la
// aplicación recibe el perfil ya resuelto (nunca hace lookup ambiente).
type SessionService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	authLogs repository.AuthLogRepository
	cfg      Config
	log      *logger.Logger
}

// NewSessionService construye el caso de uso de sesiones.
func NewSessionService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	authLogs repository.AuthLogRepository,
	cfg Config,
	log *logger.Logger,
) *SessionService {
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = 24 * time.Hour
	}
	return &SessionService{users: users, sessions: sessions, authLogs: authLogs, cfg: cfg, log: log}
}

// Login verifica credenciales y crea una sesión nueva.
//
// Errores tipados: domain.ErrUserNotFound si el email no existe,
// domain.ErrUserInactive si la cuenta está desactivada (se evalúa ANTES que la
// contraseña), domain.ErrInvalidCredentials si el hash no coincide y
// domain.ErrSessionError si falla la escritura de la sesión.
//
// Cada intento, exitoso o no, queda en logs_autenticacion; esa escritura es
// best-effort y jamás bloquea ni falla el login.
func (s *SessionService) Login(ctx context.Context, email, password, userAgent string) (*dto.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario: %w", err)
	}
	if user == nil {
		s.recordAttempt(ctx, email, false, "Usuario no encontrado", userAgent)
		return nil, domain.ErrUserNotFound
	}
	if !user.Active {
		s.recordAttempt(ctx, email, false, "Usuario inactivo", userAgent)
		return nil, domain.ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.recordAttempt(ctx, email, false, "Contraseña incorrecta", userAgent)
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	session := &entity.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
		UserAgent: userAgent,
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		s.recordAttempt(ctx, email, false, "Error al crear sesión", userAgent)
		s.log.Error().Err(err).Str("email", email).Msg("crear sesión")
		return nil, domain.ErrSessionError
	}

	// Último acceso es informativo: si falla no invalida el login.
	if err := s.users.TouchLastAccess(ctx, user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("actualizar ultimo_acceso")
	}

	s.recordAttempt(ctx, email, true, "Login exitoso", userAgent)

	return &dto.LoginResponse{
		User:    toProfile(user),
		Token:   session.Token,
		Expires: session.ExpiresAt,
	}, nil
}

// Logout elimina la sesión del token. Idempotente: un token inexistente no es error.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("eliminar sesión: %w", err)
	}
	return nil
}

// VerifySession es la verificación autoritativa de acceso. Devuelve nil (sin
// error) cuando el token no existe, cuando la sesión venció o cuando el usuario
// dueño está inactivo; en los dos últimos casos elimina la sesión como efecto
// secundario. Si la sesión es válida devuelve la misma forma que Login.
func (s *SessionService) VerifySession(ctx context.Context, token string) (*dto.LoginResponse, error) {
	if token == "" {
		return nil, nil
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("buscar sesión: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("eliminar sesión expirada")
		}
		return nil, nil
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("buscar usuario de la sesión: %w", err)
	}
	if user == nil || !user.Active {
		if err := s.sessions.Delete(ctx, token); err != nil {
			s.log.Warn().Err(err).Msg("eliminar sesión de usuario inactivo")
		}
		return nil, nil
	}
	return &dto.LoginResponse{
		User:    toProfile(user),
		Token:   session.Token,
		Expires: session.ExpiresAt,
	}, nil
}

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashear password: %w", err)
	}
	return string(hash), nil
}

// StartSweeper lanza una goroutine que elimina sesiones vencidas cada `every`.
// Es limpieza consultiva, no frontera de seguridad: la autoridad sigue siendo
// VerifySession en cada acceso. Se detiene cuando ctx se cancela.
func (s *SessionService) StartSweeper(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	go func() {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.sessions.DeleteExpired(ctx, time.Now())
				if err != nil {
					s.log.Warn().Err(err).Msg("barrido de sesiones expiradas")
					continue
				}
				if n > 0 {
					s.log.Info().Int64("sesiones", n).Msg("sesiones expiradas eliminadas")
				}
			}
		}
	}()
}

// recordAttempt escribe el intento en logs_autenticacion. Best-effort: un
// fallo del log de auditoría solo se reporta al logger de aplicación.
func (s *SessionService) recordAttempt(ctx context.Context, email string, success bool, message, userAgent string) {
	entry := &entity.AuthLog{
		ID:        uuid.New().String(),
		Email:     email,
		Success:   success,
		Message:   message,
		UserAgent: userAgent,
		CreatedAt: time.Now(),
	}
	if err := s.authLogs.Insert(ctx, entry); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("registrar intento de login")
	}
}

func toProfile(u *entity.User) dto.UserProfile {
	return dto.UserProfile{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.RoleName,
		Active:    u.Active,
	}
}
