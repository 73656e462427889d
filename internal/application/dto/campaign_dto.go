package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignRequest campos editables de una campaña (crear y editar).
type CampaignRequest struct {
	Name          string          `json:"nombre" validate:"required,min=1,max=200"`
	Description   string          `json:"descripcion"`
	DiscountType  string          `json:"tipo_descuento" validate:"omitempty,oneof=porcentaje monto"`
	DiscountValue decimal.Decimal `json:"valor_descuento"`
	StartDate     string          `json:"fecha_inicio"` // YYYY-MM-DD, opcional
	EndDate       string          `json:"fecha_fin"`    // YYYY-MM-DD, opcional
	Channel       string          `json:"canal" validate:"required"`
}

// DispatchRequest entrada del envío final del asistente: campos de la campaña,
// clientes seleccionados y mensaje compuesto (vacío = usar plantilla sugerida).
type DispatchRequest struct {
	Campaign    CampaignRequest `json:"campana"`
	CustomerIDs []string        `json:"clientes" validate:"required,min=1"`
	Message     string          `json:"mensaje"`
}

// RecipientResult resultado del envío a un cliente.
type RecipientResult struct {
	Customer string `json:"cliente"`
	Status   string `json:"estado"` // "exitoso" | "fallido" | "enviado" (simulado)
	Error    string `json:"error,omitempty"`
}

// DispatchResponse resumen del fan-out: la campaña creada y los contadores.
type DispatchResponse struct {
	Campaign  CampaignResponse  `json:"campana"`
	Succeeded int               `json:"exitosos"`
	Failed    int               `json:"fallidos"`
	Details   []RecipientResult `json:"detalles"`
	Simulated bool              `json:"simulado"`
}

// CampaignResponse salida de una campaña.
type CampaignResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"nombre"`
	Description   string          `json:"descripcion,omitempty"`
	DiscountType  string          `json:"tipo_descuento,omitempty"`
	DiscountValue decimal.Decimal `json:"valor_descuento"`
	StartDate     *time.Time      `json:"fecha_inicio,omitempty"`
	EndDate       *time.Time      `json:"fecha_fin,omitempty"`
	Channel       string          `json:"canal"`
	Status        string          `json:"estado"`
	CreatedAt     time.Time       `json:"created_at"`
}

// AssignmentResponse asignación campaña-cliente.
type AssignmentResponse struct {
	CustomerID string     `json:"cliente_id"`
	Sent       bool       `json:"enviado"`
	SentAt     *time.Time `json:"fecha_envio,omitempty"`
	Responded  bool       `json:"respondio"`
}
