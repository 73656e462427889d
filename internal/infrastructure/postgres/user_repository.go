package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `
	u.id, u.email, u.password_hash, u.nombre, u.apellido, u.rol_id, r.nombre,
	u.activo, u.ultimo_acceso, u.creado_por, u.created_at, u.updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Todas las lecturas hacen join con roles para resolver el nombre del rol.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO usuarios (id, email, password_hash, nombre, apellido, rol_id, activo, creado_por, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.RoleID, user.Active, user.CreatedBy, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil sin error si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u JOIN roles r ON r.id = u.rol_id
		WHERE u.id = $1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id), "get usuario by id")
}

// GetByEmail obtiene un usuario por email. Devuelve nil sin error si no existe.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u JOIN roles r ON r.id = u.rol_id
		WHERE u.email = $1 LIMIT 1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email), "get usuario by email")
}

// Update actualiza los datos editables de un usuario.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE usuarios SET email = $2, password_hash = $3, nombre = $4, apellido = $5, rol_id = $6, activo = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName,
		user.RoleID, user.Active, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// SetActive cambia solo el flag activo.
func (r *UserRepo) SetActive(ctx context.Context, id string, active bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE usuarios SET activo = $2, updated_at = now() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return fmt.Errorf("set activo usuario: %w", err)
	}
	return nil
}

// TouchLastAccess actualiza ultimo_acceso al momento actual.
func (r *UserRepo) TouchLastAccess(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE usuarios SET ultimo_acceso = now() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("touch ultimo_acceso: %w", err)
	}
	return nil
}

// List lista todos los usuarios, activos e inactivos, más recientes primero.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM usuarios u JOIN roles r ON r.id = u.rol_id
		ORDER BY u.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.RoleID, &u.RoleName,
			&u.Active, &u.LastAccess, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.RoleID, &u.RoleName,
		&u.Active, &u.LastAccess, &u.CreatedBy, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// ── Roles ─────────────────────────────────────────────────────────────────────

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo catálogo de roles sobre PostgreSQL.
type RoleRepo struct {
	pool *pgxpool.Pool
}

// NewRoleRepository construye el adaptador de roles.
func NewRoleRepository(pool *pgxpool.Pool) *RoleRepo {
	return &RoleRepo{pool: pool}
}

// List lista los roles activos.
func (r *RoleRepo) List(ctx context.Context) ([]*entity.Role, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, activo FROM roles WHERE activo = true ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		var role entity.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.Active); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &role)
	}
	return list, rows.Err()
}

// GetByName obtiene un rol por nombre. Devuelve nil sin error si no existe.
func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	var role entity.Role
	err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, activo FROM roles WHERE nombre = $1`, name,
	).Scan(&role.ID, &role.Name, &role.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol by nombre: %w", err)
	}
	return &role, nil
}
