package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canales de envío de campañas. Telegram y email son envíos reales; cualquier
// otro valor (whatsapp, instagram) se resuelve con el canal simulado.
const (
	ChannelTelegram  = "telegram"
	ChannelEmail     = "email"
	ChannelWhatsApp  = "whatsapp"
	ChannelInstagram = "instagram"
)

// Estados de una campaña. Las transiciones son siempre por acción explícita
// del operador; una campaña nunca expira sola.
const (
	CampaignActive    = "activa"
	CampaignScheduled = "programada"
	CampaignPaused    = "pausada"
	CampaignFinished  = "finalizada"
)

// Tipos de descuento.
const (
	DiscountNone       = ""
	DiscountPercentage = "porcentaje"
	DiscountFixed      = "monto"
)

// Campaign representa una campaña de marketing (tabla campanas).
type Campaign struct {
	ID            string
	Name          string
	Description   string
	DiscountType  string          // "", "porcentaje", "monto"
	DiscountValue decimal.Decimal // 0 cuando DiscountType == ""
	StartDate     *time.Time
	EndDate       *time.Time
	Channel       string
	Status        string
	CreatedAt     time.Time
}

// ValidCampaignStatus indica si s es uno de los estados admitidos.
func ValidCampaignStatus(s string) bool {
	switch s {
	case CampaignActive, CampaignScheduled, CampaignPaused, CampaignFinished:
		return true
	}
	return false
}

// CampaignCustomer asignación campaña-cliente (tabla campana_clientes).
// Se crea en bloque al despachar una campaña: Sent=true registra que el cliente
// fue incluido en el envío, independiente de si su mensaje individual llegó.
type CampaignCustomer struct {
	ID         string
	CampaignID string
	CustomerID string
	Sent       bool
	SentAt     *time.Time
	Responded  bool // solo para reportes
}
