package repository

import (
	"context"
	"time"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// SessionRepository define el puerto de persistencia para Session.
// Delete es idempotente: borrar un token inexistente no es error.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	Delete(ctx context.Context, token string) error
	// DeleteByUser revoca todas las sesiones de un usuario (cascade al desactivarlo).
	DeleteByUser(ctx context.Context, userID string) error
	// DeleteExpired elimina las sesiones con expira_en < before. Devuelve cuántas borró.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// AuthLogRepository registro de intentos de login. La escritura es best-effort:
// el caso de uso ignora el error y solo lo loguea.
type AuthLogRepository interface {
	Insert(ctx context.Context, log *entity.AuthLog) error
}
