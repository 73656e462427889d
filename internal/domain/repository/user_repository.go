package repository

import (
	"context"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Las lecturas incluyen el nombre del rol (join con roles).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// SetActive cambia solo el flag activo (desactivación/reactivación suave).
	SetActive(ctx context.Context, id string, active bool) error
	// TouchLastAccess actualiza ultimo_acceso al momento actual.
	TouchLastAccess(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.User, error)
}

// RoleRepository catálogo de roles para asignación en la pantalla de usuarios.
type RoleRepository interface {
	List(ctx context.Context) ([]*entity.Role, error)
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
