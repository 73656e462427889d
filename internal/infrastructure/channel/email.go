// Package channel implementa los canales de envío de campañas sobre los
// clientes de cada proveedor (Resend, Telegram) más el canal simulado.
package channel

import (
	"context"
	"fmt"
	"strings"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/infrastructure/resend"
)

var _ campaign.Channel = (*EmailChannel)(nil)

// EmailChannel canal de correo sobre Resend.
type EmailChannel struct {
	client   *resend.Client
	from     string // correo remitente
	fromName string
}

// NewEmailChannel construye el canal de correo.
func NewEmailChannel(client *resend.Client, from, fromName string) *EmailChannel {
	return &EmailChannel{client: client, from: from, fromName: fromName}
}

// Name implementa campaign.Channel.
func (c *EmailChannel) Name() string { return entity.ChannelEmail }

// Verify comprueba que exista API key de Resend.
func (c *EmailChannel) Verify(ctx context.Context) error {
	if !c.client.IsConfigured() {
		return domain.ErrChannelNotConfigured
	}
	return nil
}

// Send envía el correo de campaña al cliente. Un cliente sin email se descarta
// antes de tocar la red, devolviendo domain.ErrRecipientNoEmail.
func (c *EmailChannel) Send(ctx context.Context, customer *entity.Customer, msg campaign.Message) error {
	if customer.Email == "" {
		return domain.ErrRecipientNoEmail
	}
	_, err := c.client.SendEmail(ctx, resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.from),
		To:      []string{customer.Email},
		Subject: campaign.EmailSubject(msg.CampaignName),
		HTML:    emailHTML(customer, msg),
	})
	return err
}

// emailHTML arma el cuerpo HTML del correo de campaña: cabecera con degradado,
// contenido personalizado con saludo, botón de WhatsApp y pie con la leyenda
// de baja.
func emailHTML(customer *entity.Customer, msg campaign.Message) string {
	body := strings.ReplaceAll(msg.Body, "\n", "<br>")
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #f22121, #ff4444); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
    .content { background: #ffffff; padding: 30px; border: 2px solid #f0f0f0; border-radius: 0 0 10px 10px; }
    .button { display: inline-block; padding: 12px 30px; background: #f22121; color: white !important; text-decoration: none; border-radius: 8px; margin: 20px 0; font-weight: bold; }
    .footer { text-align: center; margin-top: 30px; padding: 20px; color: #999; font-size: 12px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>🍦 Heladería Memimo</h1>
      <p>%s</p>
    </div>
    <div class="content">
      <h2>¡Hola %s! 👋</h2>
      %s
      <div style="text-align: center;">
        <a href="https://wa.me/51%s" class="button">💬 Contáctanos por WhatsApp</a>
      </div>
    </div>
    <div class="footer">
      <p>Heladería Memimo - Huancayo, Perú</p>
      <p>Este correo fue enviado porque eres parte de nuestra familia Memimo 💕</p>
      <p style="font-size: 10px; color: #ccc;">Si no deseas recibir más correos, responde con "BAJA" a este email.</p>
    </div>
  </div>
</body>
</html>`, msg.CampaignName, customer.FirstNames, body, customer.Phone)
}
