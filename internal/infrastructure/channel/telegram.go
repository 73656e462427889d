package channel

import (
	"context"
	"fmt"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/infrastructure/telegram"
)

var _ campaign.Channel = (*TelegramChannel)(nil)

// TelegramChannel canal sobre el Bot API de Telegram.
//
// TODO: guardar el chat_id de Telegram por cliente y enviar a ese destino.
// Hoy todos los mensajes van al chat por defecto configurado, de modo que el
// "destinatario" del loop solo personaliza el saludo del texto.
type TelegramChannel struct {
	client *telegram.Client
	chatID string // chat por defecto al que se envía todo
}

// NewTelegramChannel construye el canal de Telegram.
func NewTelegramChannel(client *telegram.Client, chatID string) *TelegramChannel {
	return &TelegramChannel{client: client, chatID: chatID}
}

// Name implementa campaign.Channel.
func (c *TelegramChannel) Name() string { return entity.ChannelTelegram }

// Verify comprueba token y chat por defecto, y valida el token contra getMe.
func (c *TelegramChannel) Verify(ctx context.Context) error {
	if !c.client.IsConfigured() || c.chatID == "" {
		return domain.ErrChannelNotConfigured
	}
	if _, err := c.client.GetMe(ctx); err != nil {
		return err
	}
	return nil
}

// Send envía el mensaje personalizado al chat por defecto.
func (c *TelegramChannel) Send(ctx context.Context, customer *entity.Customer, msg campaign.Message) error {
	text := fmt.Sprintf("<b>¡Hola %s! 🍦</b>\n\n%s\n\n<i>- Heladería Memimo Huancayo</i>",
		customer.FirstNames, msg.Body)
	return c.client.SendMessage(ctx, c.chatID, text)
}
