package campaign_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
)

func existingCampaign() *entity.Campaign {
	return &entity.Campaign{
		ID:            "camp-1",
		Name:          "Semana del chocolate",
		Channel:       entity.ChannelEmail,
		Status:        entity.CampaignActive,
		DiscountValue: decimal.Zero,
		CreatedAt:     time.Now(),
	}
}

// Editar una campaña solo persiste campos: jamás pasa por el dispatcher ni
// toca las asignaciones existentes.
func TestCampaignUpdate_NuncaReenvia(t *testing.T) {
	repo := &fakeCampaignRepo{created: existingCampaign()}
	uc := campaign.NewUseCase(repo)

	out, err := uc.Update(context.Background(), "camp-1", dto.CampaignRequest{
		Name:    "Semana del chocolate (extendida)",
		Channel: entity.ChannelEmail,
		EndDate: "2026-09-30",
	})
	require.NoError(t, err)

	assert.Equal(t, "Semana del chocolate (extendida)", out.Name)
	require.NotNil(t, out.EndDate)
	assert.Equal(t, "2026-09-30", out.EndDate.Format("2006-01-02"))

	require.NotNil(t, repo.updated)
	assert.Nil(t, repo.assignments, "editar no debe crear ni tocar asignaciones")
}

// Round-trip: editar sin cambiar nada y guardar no altera ningún campo.
func TestCampaignUpdate_SinCambiosEsIdentidad(t *testing.T) {
	original := existingCampaign()
	repo := &fakeCampaignRepo{created: original}
	uc := campaign.NewUseCase(repo)

	before, err := uc.GetByID(context.Background(), "camp-1")
	require.NoError(t, err)

	after, err := uc.Update(context.Background(), "camp-1", dto.CampaignRequest{
		Name:    original.Name,
		Channel: original.Channel,
	})
	require.NoError(t, err)
	assert.Equal(t, before, after, "guardar sin cambios no debe producir diferencias")
}

func TestCampaignUpdate_Validaciones(t *testing.T) {
	repo := &fakeCampaignRepo{}
	uc := campaign.NewUseCase(repo)
	ctx := context.Background()

	_, err := uc.Update(ctx, "no-existe", dto.CampaignRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	repo.created = existingCampaign()
	_, err = uc.Update(ctx, "camp-1", dto.CampaignRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el nombre sigue siendo obligatorio al editar")
}

// Las campañas nunca cambian de estado solas; la única vía es esta transición
// explícita, y solo hacia estados válidos.
func TestCampaignChangeStatus(t *testing.T) {
	repo := &fakeCampaignRepo{created: existingCampaign()}
	uc := campaign.NewUseCase(repo)
	ctx := context.Background()

	require.NoError(t, uc.ChangeStatus(ctx, "camp-1", entity.CampaignPaused))
	assert.Equal(t, entity.CampaignPaused, repo.statusSet)

	err := uc.ChangeStatus(ctx, "camp-1", "archivada")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado fuera del catálogo se rechaza")
}

func TestCampaignList_FiltroDeEstadoInvalido(t *testing.T) {
	uc := campaign.NewUseCase(&fakeCampaignRepo{})

	_, err := uc.List(context.Background(), "cualquiera")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
}
