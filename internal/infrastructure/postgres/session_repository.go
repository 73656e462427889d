package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
// El token opaco es la clave primaria de la tabla sesiones.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el adaptador de sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create persiste una nueva sesión.
func (r *SessionRepo) Create(ctx context.Context, session *entity.Session) error {
	query := `
		INSERT INTO sesiones (token, usuario_id, expira_en, user_agent, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		session.Token, session.UserID, session.ExpiresAt,
		session.UserAgent, session.IPAddress, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sesion: %w", err)
	}
	return nil
}

// GetByToken obtiene una sesión por token. Devuelve nil sin error si no existe.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	query := `
		SELECT token, usuario_id, expira_en, user_agent, ip_address, created_at
		FROM sesiones WHERE token = $1`
	var s entity.Session
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&s.Token, &s.UserID, &s.ExpiresAt, &s.UserAgent, &s.IPAddress, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sesion by token: %w", err)
	}
	return &s, nil
}

// Delete elimina una sesión por token. Idempotente.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sesiones WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete sesion: %w", err)
	}
	return nil
}

// DeleteByUser revoca todas las sesiones de un usuario.
func (r *SessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM sesiones WHERE usuario_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete sesiones de usuario: %w", err)
	}
	return nil
}

// DeleteExpired elimina las sesiones vencidas antes de before y devuelve cuántas borró.
func (r *SessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sesiones WHERE expira_en < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("delete sesiones vencidas: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ── Logs de autenticación ─────────────────────────────────────────────────────

var _ repository.AuthLogRepository = (*AuthLogRepo)(nil)

// AuthLogRepo auditoría de intentos de login sobre PostgreSQL.
type AuthLogRepo struct {
	pool *pgxpool.Pool
}

// NewAuthLogRepository construye el adaptador de logs de autenticación.
func NewAuthLogRepository(pool *pgxpool.Pool) *AuthLogRepo {
	return &AuthLogRepo{pool: pool}
}

// Insert registra un intento de login.
func (r *AuthLogRepo) Insert(ctx context.Context, log *entity.AuthLog) error {
	query := `
		INSERT INTO logs_autenticacion (id, email, exito, mensaje, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.pool.Exec(ctx, query,
		log.ID, log.Email, log.Success, log.Message, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert log autenticacion: %w", err)
	}
	return nil
}
