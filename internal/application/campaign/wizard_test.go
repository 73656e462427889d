package campaign_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/application/dto"
)

// ──────────────────────────────────────────────────────────────────────────────
// Navegación del asistente
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_NoAvanzaSinNombre(t *testing.T) {
	w := campaign.NewWizard()

	err := w.Next()
	assert.ErrorIs(t, err, campaign.ErrNameRequired)
	assert.Equal(t, campaign.StepInfo, w.Step(), "sin nombre el asistente no avanza")

	w.Campaign.Name = "Semana del chocolate"
	require.NoError(t, w.Next())
	assert.Equal(t, campaign.StepChannel, w.Step())
}

func TestWizard_NoAvanzaSinClientes(t *testing.T) {
	w := campaign.NewWizard()
	w.Campaign.Name = "Semana del chocolate"
	require.NoError(t, w.Next()) // Info → Canal
	require.NoError(t, w.Next()) // Canal → Clientes

	err := w.Next()
	assert.ErrorIs(t, err, campaign.ErrNoRecipients)
	assert.Equal(t, campaign.StepRecipients, w.Step())

	w.ToggleCustomer("c1")
	require.NoError(t, w.Next())
	assert.Equal(t, campaign.StepSend, w.Step())
	assert.True(t, w.CanSend())
}

// Retroceder nunca está restringido, ni siquiera con pasos inválidos.
func TestWizard_BackSiemprePermitido(t *testing.T) {
	w := campaign.NewWizard()
	w.Campaign.Name = "Promo"
	require.NoError(t, w.Next())

	w.Back()
	assert.Equal(t, campaign.StepInfo, w.Step())

	// En el primer paso, Back es un no-op.
	w.Back()
	assert.Equal(t, campaign.StepInfo, w.Step())
}

func TestWizard_ToggleYSelectAll(t *testing.T) {
	w := campaign.NewWizard()

	w.ToggleCustomer("a")
	w.ToggleCustomer("b")
	assert.Equal(t, []string{"a", "b"}, w.Selected(), "mantiene el orden de selección")

	w.ToggleCustomer("a")
	assert.Equal(t, []string{"b"}, w.Selected())

	// SelectAll sobre una selección parcial selecciona todo.
	w.SelectAll([]string{"a", "b", "c"})
	assert.Equal(t, 3, w.SelectedCount())

	// SelectAll con todos ya seleccionados limpia.
	w.SelectAll([]string{"a", "b", "c"})
	assert.Zero(t, w.SelectedCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// Mensaje: plantilla sugerida y edición pegajosa
// ──────────────────────────────────────────────────────────────────────────────

func TestWizard_MensajePorDefectoEsLaPlantilla(t *testing.T) {
	w := campaign.NewWizard()
	w.Campaign = dto.CampaignRequest{Name: "Día de la lúcuma"}

	assert.Equal(t, campaign.SuggestedMessage(w.Campaign), w.Message())
}

// Una edición del operador reemplaza la plantilla de forma permanente: si
// luego cambian los datos de la campaña, el mensaje editado se conserva.
func TestWizard_EdicionEsPegajosa(t *testing.T) {
	w := campaign.NewWizard()
	w.Campaign = dto.CampaignRequest{Name: "Día de la lúcuma"}

	w.SetMessage("Hola, hay helados nuevos")
	assert.Equal(t, "Hola, hay helados nuevos", w.Message())

	w.Campaign.Name = "Otro nombre"
	assert.Equal(t, "Hola, hay helados nuevos", w.Message(),
		"cambiar los datos de la campaña no debe pisar la edición del operador")

	// Incluso una edición vacía es una edición.
	w.SetMessage("")
	assert.Empty(t, w.Message())

	// ResetMessage vuelve a la plantilla calculada con los datos actuales.
	w.ResetMessage()
	assert.Equal(t, campaign.SuggestedMessage(w.Campaign), w.Message())
	assert.Contains(t, w.Message(), "Otro nombre")
}

// ──────────────────────────────────────────────────────────────────────────────
// Plantilla sugerida
// ──────────────────────────────────────────────────────────────────────────────

func TestSuggestedMessage_CamposOpcionales(t *testing.T) {
	min := campaign.SuggestedMessage(dto.CampaignRequest{Name: "Promo mínima"})
	assert.Contains(t, min, "Promo mínima")
	assert.Contains(t, min, "Heladería Memimo - Huancayo")
	assert.NotContains(t, min, "🎁", "sin descuento no hay línea de regalo")
	assert.NotContains(t, min, "📅", "sin fecha fin no hay línea de vigencia")

	full := campaign.SuggestedMessage(dto.CampaignRequest{
		Name:          "Verano dulce",
		Description:   "Toda la carta de paletas",
		DiscountType:  "porcentaje",
		DiscountValue: decimalFromInt(20),
		EndDate:       "2026-03-15",
	})
	assert.Contains(t, full, "Toda la carta de paletas")
	assert.Contains(t, full, "20% de descuento")
	assert.Contains(t, full, "Válido hasta el 15/03/2026")
}

func TestSuggestedMessage_DescuentoFijo(t *testing.T) {
	msg := campaign.SuggestedMessage(dto.CampaignRequest{
		Name:          "Martes de sabor",
		DiscountType:  "monto",
		DiscountValue: decimalFromInt(5),
	})
	assert.Contains(t, msg, "S/ 5 de descuento")
}

func TestEmailSubject(t *testing.T) {
	assert.Equal(t, "🍦 Verano dulce - Heladería Memimo", campaign.EmailSubject("Verano dulce"))
}
