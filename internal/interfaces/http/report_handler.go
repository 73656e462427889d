package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/memimo/crm-api/internal/application/analytics"
	"github.com/memimo/crm-api/internal/application/dto"
	"github.com/memimo/crm-api/internal/application/reports"
)

// ReportHandler tablero de estadísticas y reporte PDF de ventas.
type ReportHandler struct {
	dashboard *analytics.DashboardUseCase
	reports   *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(dashboard *analytics.DashboardUseCase, rep *reports.UseCase) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, reports: rep}
}

// Dashboard godoc
// @Summary      Estadísticas del tablero principal
// @Tags         reportes
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reportes/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.Stats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// SalesPDF godoc
// @Summary      Descargar reporte de ventas en PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        desde  query  string  true   "Fecha inicial (YYYY-MM-DD)"
// @Param        hasta  query  string  false  "Fecha final (YYYY-MM-DD), por defecto hoy"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reportes/ventas.pdf [get]
func (h *ReportHandler) SalesPDF(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("desde"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "desde debe tener formato YYYY-MM-DD"})
	}
	var to time.Time
	if raw := c.Query("hasta"); raw != "" {
		to, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "hasta debe tener formato YYYY-MM-DD"})
		}
		// incluye el día final completo
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	pdf, err := h.reports.SalesPDF(c.UserContext(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="reporte-ventas-%s.pdf"`, time.Now().Format("2006-01-02")))
	return c.Send(pdf)
}
