package campaign

import (
	"context"
	"errors"
	"time"

	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
	"github.com/memimo/crm-api/internal/domain/entity"
	"github.com/memimo/crm-api/internal/domain/repository"
	"github.com/memimo/crm-api/pkg/logger"
)

// Estados por destinatario en el detalle del resumen.
const (
	ResultOK        = "exitoso"
	ResultFailed    = "fallido"
	ResultSimulated = "enviado" // canal simulado, solo feedback visual
)

// Pausa única del canal simulado antes de reportar resultados.
const simulatedPause = 3 * time.Second

// Dispatcher ejecuta el fan-out de una campaña: crea el registro, resuelve el
// canal, envía secuencialmente con pausa fija entre envíos y persiste en
// bloque las asignaciones campaña-cliente.
//
// Garantías (y no-garantías) del loop:
//   - estrictamente secuencial, sin concurrencia entre destinatarios;
//   - el fallo de un destinatario se cuenta y el loop continúa, sin reintentos;
//   - no hay rollback parcial: las N asignaciones se escriben siempre, de modo
//     que "asignado" y "entregado" son garantías distintas a propósito;
//   - una vez disparado corre hasta el final, aunque el cliente HTTP se
//     desconecte (context.WithoutCancel).
type Dispatcher struct {
	campaigns repository.CampaignRepository
	customers repository.CustomerRepository
	channels  map[string]Channel
	fallback  Channel // canal simulado para canales demo o sin configurar
	gate      delayGate
	log       *logger.Logger
}

// NewDispatcher construye el dispatcher. channels indexa los canales reales
// por nombre; fallback es el canal simulado.
func NewDispatcher(
	campaigns repository.CampaignRepository,
	customers repository.CustomerRepository,
	channels []Channel,
	fallback Channel,
	delay time.Duration,
	log *logger.Logger,
) *Dispatcher {
	byName := make(map[string]Channel, len(channels))
	for _, ch := range channels {
		byName[ch.Name()] = ch
	}
	return &Dispatcher{
		campaigns: campaigns,
		customers: customers,
		channels:  byName,
		fallback:  fallback,
		gate:      delayGate{delay: delay},
		log:       log,
	}
}

// Dispatch confirma el paso final del asistente: crea la campaña (estado
// activa), ejecuta el fan-out y registra las asignaciones. La edición de una
// campaña existente NO pasa por aquí (ver UseCase.Update).
func (d *Dispatcher) Dispatch(ctx context.Context, in dto.DispatchRequest) (*dto.DispatchResponse, error) {
	// Reproducir el asistente garantiza en el servidor las mismas reglas de
	// navegación que valida la UI: nombre no vacío y al menos un cliente.
	w := NewWizard()
	w.Campaign = in.Campaign
	if err := w.Next(); err != nil { // Info → Canal
		return nil, err
	}
	_ = w.Next() // Canal → Clientes
	w.SelectAll(in.CustomerIDs)
	if err := w.Next(); err != nil { // Clientes → Enviar
		return nil, err
	}
	if in.Message != "" {
		w.SetMessage(in.Message)
	}

	// El envío ya disparado corre a término aunque el llamador se desconecte.
	ctx = context.WithoutCancel(ctx)

	camp, err := newCampaign(in.Campaign)
	if err != nil {
		return nil, err
	}
	if err := d.campaigns.Create(ctx, camp); err != nil {
		return nil, err
	}

	recipients, err := d.customers.ListByIDs(ctx, w.Selected())
	if err != nil {
		return nil, err
	}

	ch, simulated := d.resolveChannel(ctx, camp.Channel)
	message := Message{CampaignName: camp.Name, Body: w.Message()}

	d.log.Info().
		Str("campana", camp.ID).
		Str("canal", ch.Name()).
		Bool("simulado", simulated).
		Int("clientes", len(recipients)).
		Msg("iniciando envío de campaña")

	var results []dto.RecipientResult
	if simulated {
		results = d.simulate(ctx, recipients)
	} else {
		results = d.fanOut(ctx, ch, recipients, message)
	}

	succeeded, failed := 0, 0
	for _, r := range results {
		if r.Status == ResultFailed {
			failed++
		} else {
			succeeded++
		}
	}

	// Todas las selecciones quedan asignadas con enviado=true, llegue o no el
	// mensaje individual: el resumen reporta los fallos, la asignación no.
	now := time.Now()
	assignments := make([]*entity.CampaignCustomer, 0, len(recipients))
	for _, c := range recipients {
		assignments = append(assignments, &entity.CampaignCustomer{
			CampaignID: camp.ID,
			CustomerID: c.ID,
			Sent:       true,
			SentAt:     &now,
		})
	}
	if err := d.campaigns.BulkAssign(ctx, assignments); err != nil {
		return nil, err
	}

	d.log.Info().
		Str("campana", camp.ID).
		Int("exitosos", succeeded).
		Int("fallidos", failed).
		Msg("envío de campaña terminado")

	return &dto.DispatchResponse{
		Campaign:  *toCampaignResponse(camp),
		Succeeded: succeeded,
		Failed:    failed,
		Details:   results,
		Simulated: simulated,
	}, nil
}

// resolveChannel devuelve el canal real del nombre dado, o el simulado cuando
// el nombre no corresponde a un canal real o sus credenciales no verifican.
func (d *Dispatcher) resolveChannel(ctx context.Context, name string) (Channel, bool) {
	ch, ok := d.channels[name]
	if !ok {
		return d.fallback, true
	}
	if err := ch.Verify(ctx); err != nil {
		d.log.Warn().Err(err).Str("canal", name).Msg("canal no verificado, usando simulado")
		return d.fallback, true
	}
	return ch, false
}

// fanOut envía secuencialmente a cada destinatario. Cada envío se aísla: un
// fallo se registra una sola vez y el loop sigue con el siguiente cliente.
// La pausa fija se paga después de cada intento real contra el proveedor;
// los destinatarios descartados sin llamada de red (sin email) no pausan.
func (d *Dispatcher) fanOut(ctx context.Context, ch Channel, recipients []*entity.Customer, message Message) []dto.RecipientResult {
	results := make([]dto.RecipientResult, 0, len(recipients))
	for _, customer := range recipients {
		err := ch.Send(ctx, customer, message)
		if err != nil {
			results = append(results, dto.RecipientResult{
				Customer: customer.FullName(),
				Status:   ResultFailed,
				Error:    err.Error(),
			})
			if errors.Is(err, domain.ErrRecipientNoEmail) {
				continue // sin llamada de red, sin pausa
			}
		} else {
			results = append(results, dto.RecipientResult{
				Customer: customer.FullName(),
				Status:   ResultOK,
			})
		}
		if err := d.gate.Wait(ctx); err != nil {
			// Solo ocurre con un Background ctx cancelado en shutdown duro.
			d.log.Warn().Err(err).Msg("pausa de envío interrumpida")
		}
	}
	return results
}

// simulate produce registros de entrega ficticios tras una pausa fija.
func (d *Dispatcher) simulate(ctx context.Context, recipients []*entity.Customer) []dto.RecipientResult {
	select {
	case <-ctx.Done():
	case <-time.After(simulatedPause):
	}
	results := make([]dto.RecipientResult, 0, len(recipients))
	for _, customer := range recipients {
		results = append(results, dto.RecipientResult{
			Customer: customer.FullName(),
			Status:   ResultSimulated,
		})
	}
	return results
}

// delayGate serializa los envíos con una pausa fija entre ellos; es el único
// throttle del sistema (respeta el rate limit del proveedor, no maximiza
// throughput).
type delayGate struct {
	delay time.Duration
}

// Wait bloquea por la pausa configurada o hasta que ctx se cancele.
func (g delayGate) Wait(ctx context.Context) error {
	if g.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(g.delay):
		return nil
	}
}
