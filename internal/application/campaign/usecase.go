// Package campaign implementa las campañas de marketing: CRUD, el asistente de
// cuatro pasos y el fan-out de mensajes por canal (email, telegram o simulado).
package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
)

// UseCase casos de uso CRUD y de estado para campañas. El envío vive en
// Dispatcher; editar una campaña existente solo persiste campos, nunca envía.
type UseCase struct {
	repo repository.CampaignRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CampaignRepository) *UseCase {
	return &UseCase{repo: repo}
}

// List devuelve todas las campañas, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string) ([]*dto.CampaignResponse, error) {
	var (
		list []*entity.Campaign
		err  error
	)
	if status != "" {
		if !entity.ValidCampaignStatus(status) {
			return nil, domain.ErrInvalidInput
		}
		list, err = uc.repo.ListByStatus(ctx, status)
	} else {
		list, err = uc.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CampaignResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCampaignResponse(c))
	}
	return out, nil
}

// GetByID obtiene una campaña; nil si no existe.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.CampaignResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	return toCampaignResponse(c), nil
}

// Update persiste los campos editables de una campaña existente. Es el camino
// del modo edición del asistente: no hay envío ni re-asignación de clientes.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.CampaignRequest) (*dto.CampaignResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	applyRequest(c, in)
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCampaignResponse(c), nil
}

// ChangeStatus transición explícita de estado (activa|programada|pausada|finalizada).
// Las campañas nunca cambian de estado solas.
func (uc *UseCase) ChangeStatus(ctx context.Context, id, status string) error {
	if !entity.ValidCampaignStatus(status) {
		return domain.ErrInvalidInput
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.UpdateStatus(ctx, id, status)
}

// Delete elimina físicamente una campaña (y sus asignaciones por FK).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// Assignments lista las asignaciones campaña-cliente de una campaña.
func (uc *UseCase) Assignments(ctx context.Context, campaignID string) ([]*dto.AssignmentResponse, error) {
	list, err := uc.repo.ListAssignments(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssignmentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, &dto.AssignmentResponse{
			CustomerID: a.CustomerID,
			Sent:       a.Sent,
			SentAt:     a.SentAt,
			Responded:  a.Responded,
		})
	}
	return out, nil
}

// newCampaign construye la entidad desde la request; estado inicial activa.
func newCampaign(in dto.CampaignRequest) (*entity.Campaign, error) {
	c := &entity.Campaign{
		ID:        uuid.New().String(),
		Status:    entity.CampaignActive,
		CreatedAt: time.Now(),
	}
	applyRequest(c, in)
	if c.Name == "" || c.Channel == "" {
		return nil, domain.ErrInvalidInput
	}
	return c, nil
}

func applyRequest(c *entity.Campaign, in dto.CampaignRequest) {
	c.Name = in.Name
	c.Description = in.Description
	c.DiscountType = in.DiscountType
	if in.DiscountType == entity.DiscountNone {
		c.DiscountValue = decimal.Zero
	} else {
		c.DiscountValue = in.DiscountValue
	}
	c.StartDate = parseDate(in.StartDate)
	c.EndDate = parseDate(in.EndDate)
	c.Channel = in.Channel
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

func toCampaignResponse(c *entity.Campaign) *dto.CampaignResponse {
	return &dto.CampaignResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		DiscountType:  c.DiscountType,
		DiscountValue: c.DiscountValue,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Channel:       c.Channel,
		Status:        c.Status,
		CreatedAt:     c.CreatedAt,
	}
}
