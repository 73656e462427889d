package repository

import (
	"context"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// CampaignRepository define el puerto de persistencia para Campaign y sus
// asignaciones campaña-cliente.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *entity.Campaign) error
	GetByID(ctx context.Context, id string) (*entity.Campaign, error)
	List(ctx context.Context) ([]*entity.Campaign, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.Campaign, error)
	Update(ctx context.Context, campaign *entity.Campaign) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	// BulkAssign inserta en bloque las asignaciones campaña-cliente.
	// Se invoca siempre tras el fan-out, fallaran o no los envíos individuales.
	BulkAssign(ctx context.Context, assignments []*entity.CampaignCustomer) error
	ListAssignments(ctx context.Context, campaignID string) ([]*entity.CampaignCustomer, error)
}
