package campaign

import (
	"fmt"
	"strings"
	"time"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain/entity"
)

// SuggestedMessage genera la plantilla determinista del mensaje de campaña a
// partir de nombre, descripción, descuento y fecha de fin. Es el valor por
// defecto del paso Enviar; el operador puede reemplazarlo libremente y
// restaurarlo volviendo a llamar esta función.
func SuggestedMessage(in dto.CampaignRequest) string {
	var b strings.Builder
	b.WriteString("🍦 ¡PROMOCIÓN ESPECIAL! 🍦\n\n")
	b.WriteString(in.Name)
	b.WriteString("\n\n")
	if in.Description != "" {
		b.WriteString(in.Description)
		b.WriteString("\n\n")
	}
	if d := formatDiscount(in.DiscountType, in.DiscountValue.String()); d != "" {
		b.WriteString("🎁 ")
		b.WriteString(d)
		b.WriteString("\n\n")
	}
	if in.EndDate != "" {
		if t, err := time.Parse("2006-01-02", in.EndDate); err == nil {
			b.WriteString(fmt.Sprintf("📅 Válido hasta el %s\n\n", t.Format("02/01/2006")))
		}
	}
	b.WriteString("📍 Visítanos en Heladería Memimo - Huancayo\n\n¡No te lo pierdas!")
	return b.String()
}

// EmailSubject asunto por defecto del correo de campaña.
func EmailSubject(campaignName string) string {
	return fmt.Sprintf("🍦 %s - Heladería Memimo", campaignName)
}

func formatDiscount(discountType, value string) string {
	switch discountType {
	case entity.DiscountPercentage:
		return fmt.Sprintf("%s%% de descuento", value)
	case entity.DiscountFixed:
		return fmt.Sprintf("S/ %s de descuento", value)
	default:
		return ""
	}
}
