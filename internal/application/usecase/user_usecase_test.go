package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/application/usecase"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}
func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}
func (r *memUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	if u, ok := r.users[id]; ok {
		u.Active = active
	}
	return nil
}
func (r *memUserRepo) TouchLastAccess(ctx context.Context, id string) error { return nil }
func (r *memUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

type memRoleRepo struct{ roles []*entity.Role }

func (r *memRoleRepo) List(ctx context.Context) ([]*entity.Role, error) { return r.roles, nil }
func (r *memRoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	for _, role := range r.roles {
		if role.Name == name {
			return role, nil
		}
	}
	return nil, nil
}

type memSessionRepo struct {
	sessions map[string]*entity.Session
}

func newMemSessionRepo(sessions ...*entity.Session) *memSessionRepo {
	r := &memSessionRepo{sessions: map[string]*entity.Session{}}
	for _, s := range sessions {
		r.sessions[s.Token] = s
	}
	return r
}

func (r *memSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	r.sessions[s.Token] = s
	return nil
}
func (r *memSessionRepo) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	return r.sessions[token], nil
}
func (r *memSessionRepo) Delete(ctx context.Context, token string) error {
	delete(r.sessions, token)
	return nil
}
func (r *memSessionRepo) DeleteByUser(ctx context.Context, userID string) error {
	for tok, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, tok)
		}
	}
	return nil
}
func (r *memSessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID = "00000000-0000-0000-0000-0000000000aa"
	otherID = "00000000-0000-0000-0000-0000000000bb"
	roleID  = "00000000-0000-0000-0000-0000000000cc"
)

func adminUser() *entity.User {
	return &entity.User{ID: adminID, Email: "admin@memimo.pe", RoleName: entity.RoleAdmin, Active: true}
}

func standardUser() *entity.User {
	return &entity.User{ID: otherID, Email: "cajero@memimo.pe", RoleName: entity.RoleEstandar, Active: true}
}

func TestCreateUser_HasheaYActiva(t *testing.T) {
	users := newMemUserRepo(adminUser())
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, newMemSessionRepo())

	out, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{
		Email:     "nuevo@memimo.pe",
		Password:  "unaClaveLarga",
		FirstName: "Marisol",
		RoleID:    roleID,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Active, "los usuarios nuevos nacen activos")

	created, err := users.GetByEmail(context.Background(), "nuevo@memimo.pe")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, "unaClaveLarga", created.PasswordHash,
		"el password nunca se persiste en texto plano")
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, adminID, *created.CreatedBy)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	existing := standardUser()
	users := newMemUserRepo(adminUser(), existing)
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, newMemSessionRepo())

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{
		Email:     existing.Email,
		Password:  "unaClaveLarga",
		FirstName: "Otro",
		RoleID:    roleID,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateUser_CamposRequeridos(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(newMemUserRepo(), &memRoleRepo{}, newMemSessionRepo())

	_, err := uc.Create(context.Background(), adminID, dto.CreateUserRequest{Email: "x@memimo.pe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Nadie se desactiva a sí mismo, sin importar el rol. El guard corre antes de
// cualquier acceso a la base.
func TestDeactivate_AutoDesactivacionFalla(t *testing.T) {
	users := newMemUserRepo(adminUser())
	sessions := newMemSessionRepo(&entity.Session{Token: "t1", UserID: adminID})
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, sessions)

	err := uc.Deactivate(context.Background(), adminID, adminID)
	assert.ErrorIs(t, err, domain.ErrCannotDeactivateSelf)

	u, _ := users.GetByID(context.Background(), adminID)
	assert.True(t, u.Active, "el usuario debe seguir activo")
	assert.Contains(t, sessions.sessions, "t1", "sus sesiones deben seguir vigentes")
}

// Desactivar a otro usuario es soft (la fila sobrevive) y revoca todas sus
// sesiones en cascada, sin tocar las de terceros.
func TestDeactivate_SoftYRevocaSesiones(t *testing.T) {
	users := newMemUserRepo(adminUser(), standardUser())
	sessions := newMemSessionRepo(
		&entity.Session{Token: "t-otro-1", UserID: otherID},
		&entity.Session{Token: "t-otro-2", UserID: otherID},
		&entity.Session{Token: "t-admin", UserID: adminID},
	)
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, sessions)

	require.NoError(t, uc.Deactivate(context.Background(), adminID, otherID))

	u, _ := users.GetByID(context.Background(), otherID)
	require.NotNil(t, u, "la fila del usuario nunca se elimina")
	assert.False(t, u.Active)

	assert.NotContains(t, sessions.sessions, "t-otro-1")
	assert.NotContains(t, sessions.sessions, "t-otro-2")
	assert.Contains(t, sessions.sessions, "t-admin",
		"las sesiones de otros usuarios no se tocan")
}

func TestDeactivate_UsuarioNoExiste(t *testing.T) {
	uc := usecase.NewUserAdminUseCase(newMemUserRepo(adminUser()), &memRoleRepo{}, newMemSessionRepo())

	err := uc.Deactivate(context.Background(), adminID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestActivate_Reactiva(t *testing.T) {
	u := standardUser()
	u.Active = false
	users := newMemUserRepo(u)
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, newMemSessionRepo())

	require.NoError(t, uc.Activate(context.Background(), otherID))
	got, _ := users.GetByID(context.Background(), otherID)
	assert.True(t, got.Active)
}

// Update con activo=false aplica la misma semántica que Deactivate.
func TestUpdate_DesactivarViaUpdateRevoca(t *testing.T) {
	users := newMemUserRepo(adminUser(), standardUser())
	sessions := newMemSessionRepo(&entity.Session{Token: "t-otro", UserID: otherID})
	uc := usecase.NewUserAdminUseCase(users, &memRoleRepo{}, sessions)

	inactive := false
	out, err := uc.Update(context.Background(), adminID, otherID, dto.UpdateUserRequest{Active: &inactive})
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.NotContains(t, sessions.sessions, "t-otro",
		"desactivar vía update también revoca sesiones")

	// Y el guard de auto-desactivación también aplica por esta vía.
	_, err = uc.Update(context.Background(), adminID, adminID, dto.UpdateUserRequest{Active: &inactive})
	assert.ErrorIs(t, err, domain.ErrCannotDeactivateSelf)
}
