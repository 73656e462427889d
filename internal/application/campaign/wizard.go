package campaign

import (
	"errors"

	"github.com/memimo/crm-api/internal/application/dto"
)

// Errores de navegación del asistente.
var (
	ErrNameRequired = errors.New("el nombre de la campaña es requerido")
	ErrNoRecipients = errors.New("debes seleccionar al menos un cliente")
)

// Step paso del asistente de campañas.
type Step int

const (
	StepInfo       Step = iota + 1 // datos de la campaña
	StepChannel                    // canal de envío
	StepRecipients                 // selección de clientes
	StepSend                       // vista previa y envío
)

// Wizard máquina de estados del asistente de cuatro pasos
// Info → Canal → Clientes → Enviar.
//
// Avanzar desde Info exige nombre no vacío; avanzar desde Clientes exige al
// menos un seleccionado. Retroceder nunca está restringido. El mensaje por
// defecto es la plantilla sugerida; una edición del operador la reemplaza de
// forma permanente hasta un ResetMessage explícito.
type Wizard struct {
	step     Step
	Campaign dto.CampaignRequest

	selected map[string]bool
	order    []string // ids en orden de selección

	message string // vacío = usar plantilla sugerida
	edited  bool
}

// NewWizard crea un asistente en el paso Info.
func NewWizard() *Wizard {
	return &Wizard{step: StepInfo, selected: make(map[string]bool)}
}

// Step paso actual.
func (w *Wizard) Step() Step { return w.step }

// Next avanza un paso aplicando las reglas de validación del paso actual.
func (w *Wizard) Next() error {
	switch w.step {
	case StepInfo:
		if w.Campaign.Name == "" {
			return ErrNameRequired
		}
	case StepRecipients:
		if len(w.order) == 0 {
			return ErrNoRecipients
		}
	case StepSend:
		return nil // paso terminal
	}
	w.step++
	return nil
}

// Back retrocede un paso; nunca está restringido.
func (w *Wizard) Back() {
	if w.step > StepInfo {
		w.step--
	}
}

// ToggleCustomer alterna la selección de un cliente.
func (w *Wizard) ToggleCustomer(id string) {
	if w.selected[id] {
		delete(w.selected, id)
		for i, v := range w.order {
			if v == id {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
		return
	}
	w.selected[id] = true
	w.order = append(w.order, id)
}

// SelectAll selecciona todos los ids dados; si ya estaban todos, los limpia.
func (w *Wizard) SelectAll(ids []string) {
	if len(w.order) == len(ids) && len(ids) > 0 {
		w.selected = make(map[string]bool)
		w.order = nil
		return
	}
	w.selected = make(map[string]bool, len(ids))
	w.order = append([]string(nil), ids...)
	for _, id := range ids {
		w.selected[id] = true
	}
}

// Selected ids seleccionados en orden de selección.
func (w *Wizard) Selected() []string { return append([]string(nil), w.order...) }

// SelectedCount cantidad de clientes seleccionados.
func (w *Wizard) SelectedCount() int { return len(w.order) }

// Message mensaje a enviar: la edición del operador si existe, si no la
// plantilla sugerida calculada sobre los datos actuales.
func (w *Wizard) Message() string {
	if w.edited {
		return w.message
	}
	return SuggestedMessage(w.Campaign)
}

// SetMessage fija la edición del operador. Es permanente hasta ResetMessage,
// incluso si luego cambian los datos de la campaña.
func (w *Wizard) SetMessage(msg string) {
	w.message = msg
	w.edited = true
}

// ResetMessage descarta la edición y vuelve a la plantilla sugerida.
func (w *Wizard) ResetMessage() {
	w.message = ""
	w.edited = false
}

// CanSend indica si el asistente está en el paso final con selección válida.
func (w *Wizard) CanSend() bool {
	return w.step == StepSend && w.Campaign.Name != "" && len(w.order) > 0
}
