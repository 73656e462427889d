package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `
	id, nombres, apellidos, dni, celular, email, direccion, fecha_nacimiento, notas, fecha_registro`

// CustomerRepo implementación de CustomerRepository sobre PostgreSQL.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository construye el adaptador de clientes.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (id, nombres, apellidos, dni, celular, email, direccion, fecha_nacimiento, notas, fecha_registro)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		customer.ID, customer.FirstNames, customer.LastNames, customer.DNI,
		customer.Phone, customer.Email, customer.Address, customer.BirthDate,
		customer.Notes, customer.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. Devuelve nil sin error si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE id = $1`
	var c entity.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FirstNames, &c.LastNames, &c.DNI, &c.Phone, &c.Email,
		&c.Address, &c.BirthDate, &c.Notes, &c.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List lista todos los clientes, registro más reciente primero.
func (r *CustomerRepo) List(ctx context.Context) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM clientes ORDER BY fecha_registro DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// ListByIDs obtiene los clientes cuyo ID está en ids; los IDs desconocidos se
// omiten del resultado sin error.
func (r *CustomerRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Customer, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + customerColumns + ` FROM clientes WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("list clientes by ids: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// Search busca por nombres, apellidos, dni o celular (ilike sobre el término).
func (r *CustomerRepo) Search(ctx context.Context, term string, limit int) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM clientes
		WHERE nombres ILIKE $1 OR apellidos ILIKE $1 OR dni ILIKE $1 OR celular ILIKE $1
		ORDER BY fecha_registro DESC
		LIMIT $2`
	rows, err := r.pool.Query(ctx, query, "%"+term+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search clientes: %w", err)
	}
	defer rows.Close()
	return scanCustomers(rows)
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	query := `
		UPDATE clientes SET nombres = $2, apellidos = $3, dni = $4, celular = $5, email = $6, direccion = $7, fecha_nacimiento = $8, notas = $9
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		customer.ID, customer.FirstNames, customer.LastNames, customer.DNI,
		customer.Phone, customer.Email, customer.Address, customer.BirthDate, customer.Notes,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete elimina físicamente un cliente por ID.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

func scanCustomers(rows pgx.Rows) ([]*entity.Customer, error) {
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(
			&c.ID, &c.FirstNames, &c.LastNames, &c.DNI, &c.Phone, &c.Email,
			&c.Address, &c.BirthDate, &c.Notes, &c.RegisteredAt,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
