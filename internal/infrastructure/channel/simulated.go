package channel

import (
	"context"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/domain/entity"
)

var _ campaign.Channel = (*SimulatedChannel)(nil)

// SimulatedChannel canal de demostración: no envía nada. Es el fallback del
// dispatcher para canales sin integración real (whatsapp, instagram) o cuando
// un canal real no verifica credenciales.
type SimulatedChannel struct{}

// NewSimulatedChannel construye el canal simulado.
func NewSimulatedChannel() *SimulatedChannel { return &SimulatedChannel{} }

// Name implementa campaign.Channel.
func (c *SimulatedChannel) Name() string { return "simulado" }

// Verify siempre acepta: el canal simulado no requiere credenciales.
func (c *SimulatedChannel) Verify(ctx context.Context) error { return nil }

// Send no hace nada; la pausa de simulación la aplica el dispatcher.
func (c *SimulatedChannel) Send(ctx context.Context, customer *entity.Customer, msg campaign.Message) error {
	return nil
}
