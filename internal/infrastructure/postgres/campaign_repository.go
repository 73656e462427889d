package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

var _ repository.CampaignRepository = (*CampaignRepo)(nil)

const campaignColumns = `
	id, nombre, descripcion, tipo_descuento, valor_descuento, fecha_inicio, fecha_fin, canal, estado, created_at`

// CampaignRepo implementación de CampaignRepository sobre PostgreSQL.
type CampaignRepo struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository construye el adaptador de campañas.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

// Create persiste una nueva campaña.
func (r *CampaignRepo) Create(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		INSERT INTO campanas (id, nombre, descripcion, tipo_descuento, valor_descuento, fecha_inicio, fecha_fin, canal, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		campaign.ID, campaign.Name, campaign.Description,
		campaign.DiscountType, campaign.DiscountValue,
		campaign.StartDate, campaign.EndDate,
		campaign.Channel, campaign.Status, campaign.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert campana: %w", err)
	}
	return nil
}

// GetByID obtiene una campaña por ID. Devuelve nil sin error si no existe.
func (r *CampaignRepo) GetByID(ctx context.Context, id string) (*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campanas WHERE id = $1`
	var c entity.Campaign
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.DiscountType, &c.DiscountValue,
		&c.StartDate, &c.EndDate, &c.Channel, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get campana: %w", err)
	}
	return &c, nil
}

// List lista todas las campañas, más recientes primero.
func (r *CampaignRepo) List(ctx context.Context) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campanas ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list campanas: %w", err)
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

// ListByStatus lista las campañas con el estado dado.
func (r *CampaignRepo) ListByStatus(ctx context.Context, status string) ([]*entity.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campanas WHERE estado = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list campanas by estado: %w", err)
	}
	defer rows.Close()
	return scanCampaigns(rows)
}

// Update actualiza los datos de una campaña (modo edición, nunca reenvía).
func (r *CampaignRepo) Update(ctx context.Context, campaign *entity.Campaign) error {
	query := `
		UPDATE campanas SET nombre = $2, descripcion = $3, tipo_descuento = $4, valor_descuento = $5, fecha_inicio = $6, fecha_fin = $7, canal = $8
		WHERE id = $1`
	_, err := r.pool.Exec(ctx, query,
		campaign.ID, campaign.Name, campaign.Description,
		campaign.DiscountType, campaign.DiscountValue,
		campaign.StartDate, campaign.EndDate, campaign.Channel,
	)
	if err != nil {
		return fmt.Errorf("update campana: %w", err)
	}
	return nil
}

// UpdateStatus cambia solo el estado de la campaña.
func (r *CampaignRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campanas SET estado = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update estado campana: %w", err)
	}
	return nil
}

// Delete elimina físicamente una campaña y sus asignaciones.
func (r *CampaignRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM campana_clientes WHERE campana_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete asignaciones campana: %w", err)
	}
	_, err = r.pool.Exec(ctx, `DELETE FROM campanas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campana: %w", err)
	}
	return nil
}

// BulkAssign inserta en bloque las asignaciones campaña-cliente usando un batch.
func (r *CampaignRepo) BulkAssign(ctx context.Context, assignments []*entity.CampaignCustomer) error {
	if len(assignments) == 0 {
		return nil
	}
	query := `
		INSERT INTO campana_clientes (id, campana_id, cliente_id, enviado, fecha_envio, respondio)
		VALUES ($1, $2, $3, $4, $5, $6)`
	batch := &pgx.Batch{}
	for _, a := range assignments {
		if a.ID == "" {
			a.ID = uuid.New().String()
		}
		batch.Queue(query, a.ID, a.CampaignID, a.CustomerID, a.Sent, a.SentAt, a.Responded)
	}
	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range assignments {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert campana_clientes: %w", err)
		}
	}
	return nil
}

// ListAssignments lista las asignaciones de una campaña.
func (r *CampaignRepo) ListAssignments(ctx context.Context, campaignID string) ([]*entity.CampaignCustomer, error) {
	query := `
		SELECT id, campana_id, cliente_id, enviado, fecha_envio, respondio
		FROM campana_clientes WHERE campana_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campana_clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CampaignCustomer
	for rows.Next() {
		var a entity.CampaignCustomer
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.CustomerID, &a.Sent, &a.SentAt, &a.Responded); err != nil {
			return nil, fmt.Errorf("scan campana_clientes: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func scanCampaigns(rows pgx.Rows) ([]*entity.Campaign, error) {
	var list []*entity.Campaign
	for rows.Next() {
		var c entity.Campaign
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Description, &c.DiscountType, &c.DiscountValue,
			&c.StartDate, &c.EndDate, &c.Channel, &c.Status, &c.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campana: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
