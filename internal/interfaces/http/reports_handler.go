package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/application/reports"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
)

// ReportsHandler expone el dashboard de métricas de negocio (solo staff).
type ReportsHandler struct {
	service *reports.Service
	export  *reports.ExportUseCase
}

// NewReportsHandler construye el handler de reportes.
func NewReportsHandler(service *reports.Service, export *reports.ExportUseCase) *ReportsHandler {
	return &ReportsHandler{service: service, export: export}
}

// Metrics godoc
// @Summary      Snapshot de métricas con filtro de mes
// @Tags         reports
// @Produce      json
// @Param        month  query  string  false  "all o YYYY-MM; por defecto la selección vigente"
// @Success      200  {object}  dto.ReportsResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/metrics [get]
func (h *ReportsHandler) Metrics(c *fiber.Ctx) error {
	var snap metrics.Snapshot
	var selected string
	var ok bool

	if month := c.Query("month"); month != "" {
		// Consulta ad-hoc: no mueve la selección vigente
		if month != metrics.AllMonths {
			if _, err := time.Parse("2006-01", month); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser 'all' o 'YYYY-MM'"})
			}
		}
		selected = month
		snap, ok = h.service.FilteredBy(month)
	} else {
		snap, selected, ok = h.service.Filtered()
	}
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_READY", Message: "las métricas aún no están disponibles"})
	}

	return c.JSON(dto.ReportsResponse{
		Metrics:         snap,
		SelectedMonth:   selected,
		SelectedLabel:   metrics.MonthLabel(selected),
		AvailableMonths: h.service.AvailableMonths(),
		GeneratedAt:     time.Now(),
	})
}

// Months godoc
// @Summary      Meses con datos y selección vigente
// @Tags         reports
// @Produce      json
// @Success      200  {object}  dto.MonthsResponse
// @Router       /api/reports/months [get]
func (h *ReportsHandler) Months(c *fiber.Ctx) error {
	return c.JSON(dto.MonthsResponse{
		AvailableMonths: h.service.AvailableMonths(),
		SelectedMonth:   h.service.SelectedMonth(),
	})
}

// SelectMonth godoc
// @Summary      Fijar el filtro de mes del dashboard
// @Tags         reports
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MonthSelectionRequest  true  "all o YYYY-MM"
// @Success      200  {object}  dto.MonthsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/month [post]
func (h *ReportsHandler) SelectMonth(c *fiber.Ctx) error {
	var in dto.MonthSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.service.SelectMonth(in.Month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "month debe ser 'all' o 'YYYY-MM'"})
	}
	return c.JSON(dto.MonthsResponse{
		AvailableMonths: h.service.AvailableMonths(),
		SelectedMonth:   h.service.SelectedMonth(),
	})
}

// Orders godoc
// @Summary      Órdenes lógicas del dashboard
// @Tags         reports
// @Produce      json
// @Param        filtered  query  bool  false  "aplicar la selección de mes vigente"
// @Success      200  {object}  dto.OrderHistoryResponse
// @Router       /api/reports/orders [get]
func (h *ReportsHandler) Orders(c *fiber.Ctx) error {
	filtered := c.QueryBool("filtered", false)
	return c.JSON(dto.OrderHistoryResponse{Orders: h.service.Orders(filtered)})
}

// Export godoc
// @Summary      Exportar el reporte como PDF
// @Tags         reports
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/reports/export [get]
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	out, err := h.export.Export(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_READY", Message: "las métricas aún no están disponibles"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.Filename+`"`)
	return c.Send(out.Content)
}
