package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/memimo/crm-api/internal/application/auth"
	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// UserAdminUseCase administración de usuarios, siempre invocada por un admin
// ya autenticado (el middleware HTTP garantiza el rol; aquí se re-verifica la
// invariante de negocio que no depende del transporte: nadie se desactiva a sí
// mismo). Los usuarios nunca se eliminan físicamente.
type UserAdminUseCase struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	sessions repository.SessionRepository
}

// NewUserAdminUseCase construye el caso de uso.
func NewUserAdminUseCase(users repository.UserRepository, roles repository.RoleRepository, sessions repository.SessionRepository) *UserAdminUseCase {
	return &UserAdminUseCase{users: users, roles: roles, sessions: sessions}
}

// List devuelve todos los usuarios (vista completa, sin hashes).
func (uc *UserAdminUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, toUserResponse(u))
	}
	return out, nil
}

// Roles devuelve el catálogo de roles asignables.
func (uc *UserAdminUseCase) Roles(ctx context.Context) ([]*dto.RoleResponse, error) {
	list, err := uc.roles.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RoleResponse, 0, len(list))
	for _, r := range list {
		out = append(out, &dto.RoleResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// Create crea un usuario nuevo: hashea el password con bcrypt, marca la cuenta
// activa y registra quién la creó. Devuelve ErrEmailAlreadyExists si el email
// ya está registrado.
func (uc *UserAdminUseCase) Create(ctx context.Context, adminID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.FirstName == "" || in.RoleID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		RoleID:       in.RoleID,
		Active:       true,
		CreatedBy:    &adminID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	created, err := uc.users.GetByID(ctx, user.ID) // relee para resolver rol
	if err != nil || created == nil {
		return toUserResponse(user), nil
	}
	return toUserResponse(created), nil
}

// Update actualiza nombre, apellido, rol y flag activo. Ni el email ni el
// password se tocan por esta vía. Si Active pasa a false aplica la misma
// semántica que Deactivate (guard de auto-desactivación + revocación).
func (uc *UserAdminUseCase) Update(ctx context.Context, adminID, userID string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Active != nil && !*in.Active && userID == adminID {
		return nil, domain.ErrCannotDeactivateSelf
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.RoleID != nil {
		user.RoleID = *in.RoleID
	}
	deactivated := false
	if in.Active != nil {
		deactivated = user.Active && !*in.Active
		user.Active = *in.Active
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if deactivated {
		if err := uc.sessions.DeleteByUser(ctx, userID); err != nil {
			return nil, fmt.Errorf("revocar sesiones: %w", err)
		}
	}
	updated, err := uc.users.GetByID(ctx, userID)
	if err != nil || updated == nil {
		return toUserResponse(user), nil
	}
	return toUserResponse(updated), nil
}

// Deactivate desactiva (soft) a un usuario y revoca todas sus sesiones.
// Invariante: id == adminID falla siempre con ErrCannotDeactivateSelf,
// independiente del rol.
func (uc *UserAdminUseCase) Deactivate(ctx context.Context, adminID, userID string) error {
	if userID == adminID {
		return domain.ErrCannotDeactivateSelf
	}
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.users.SetActive(ctx, userID, false); err != nil {
		return err
	}
	// Revocación en cascada: cualquier token previo del usuario queda inválido.
	if err := uc.sessions.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("revocar sesiones: %w", err)
	}
	return nil
}

// Activate reactiva una cuenta desactivada.
func (uc *UserAdminUseCase) Activate(ctx context.Context, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.users.SetActive(ctx, userID, true)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.RoleName,
		Active:     u.Active,
		LastAccess: u.LastAccess,
		CreatedAt:  u.CreatedAt,
	}
}
