package campaign

import (
	"context"

	"github.com/memimo/crm-api/internal/domain/entity"
)

// Message mensaje de campaña ya compuesto, listo para un canal. Los canales
// que necesitan asunto (email) lo derivan del nombre de la campaña.
type Message struct {
	CampaignName string
	Body         string
}

// Channel contrato uniforme de un canal de envío. El dispatcher es genérico
// sobre esta interfaz: elegir canal es elegir implementación, nunca un switch
// sobre strings dentro del loop de envío.
type Channel interface {
	// Name nombre del canal tal como se guarda en la campaña ("email", "telegram"...).
	Name() string
	// Verify comprueba que el canal tenga credenciales utilizables.
	// Devuelve domain.ErrChannelNotConfigured (o un error del proveedor) si no.
	Verify(ctx context.Context) error
	// Send envía el mensaje compuesto a un cliente. Un error aplica solo a ese
	// destinatario; el dispatcher lo cuenta y continúa con el siguiente.
	Send(ctx context.Context, customer *entity.Customer, msg Message) error
}
