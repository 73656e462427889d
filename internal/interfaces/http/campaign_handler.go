package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/memimo/crm-api/internal/application/campaign"
	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/domain"
)

// CampaignHandler CRUD de campañas y envío final del asistente (protegido).
type CampaignHandler struct {
	uc         *campaign.UseCase
	dispatcher *campaign.Dispatcher
}

// NewCampaignHandler construye el handler.
func NewCampaignHandler(uc *campaign.UseCase, dispatcher *campaign.Dispatcher) *CampaignHandler {
	return &CampaignHandler{uc: uc, dispatcher: dispatcher}
}

// List godoc
// @Summary      Listar campañas
// @Tags         campanas
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "Filtrar por estado (activa|programada|pausada|finalizada)"
// @Success      200  {array}  dto.CampaignResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/campanas [get]
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("estado"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener campaña por ID
// @Tags         campanas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la campaña"
// @Success      200  {object}  dto.CampaignResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/campanas/{id} [get]
func (h *CampaignHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campaña no encontrada"})
	}
	return c.JSON(out)
}

// Dispatch godoc
// @Summary      Confirmar el asistente: crear campaña y ejecutar el envío
// @Description  Crea la campaña en estado activa, envía secuencialmente a los
// @Description  clientes seleccionados por el canal elegido y registra todas
// @Description  las asignaciones. Los fallos individuales se reportan en el
// @Description  resumen sin abortar el resto del envío.
// @Tags         campanas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DispatchRequest  true  "Campaña, clientes y mensaje"
// @Success      201   {object}  dto.DispatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/campanas/enviar [post]
func (h *CampaignHandler) Dispatch(c *fiber.Ctx) error {
	var in dto.DispatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.dispatcher.Dispatch(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, campaign.ErrNameRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el nombre de la campaña es requerido"})
		}
		if errors.Is(err, campaign.ErrNoRecipients) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "selecciona al menos un cliente"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar campaña (modo edición, nunca reenvía)
// @Tags         campanas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la campaña"
// @Param        body  body  dto.CampaignRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CampaignResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/campanas/{id} [put]
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	var in dto.CampaignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campaña no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Cambiar estado de una campaña
// @Tags         campanas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la campaña"
// @Param        body  body  object{estado=string}  true  "Nuevo estado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/campanas/{id}/estado [put]
func (h *CampaignHandler) ChangeStatus(c *fiber.Ctx) error {
	var in struct {
		Status string `json:"estado"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ChangeStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "campaña no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Assignments godoc
// @Summary      Listar asignaciones campaña-cliente
// @Tags         campanas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la campaña"
// @Success      200  {array}  dto.AssignmentResponse
// @Router       /api/campanas/{id}/clientes [get]
func (h *CampaignHandler) Assignments(c *fiber.Ctx) error {
	out, err := h.uc.Assignments(c.UserContext(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar campaña
// @Tags         campanas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la campaña"
// @Success      204
// @Router       /api/campanas/{id} [delete]
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
