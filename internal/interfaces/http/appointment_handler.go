package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/petcare-pro/internal/application/booking"
	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// AppointmentHandler maneja reservas y transiciones de citas.
type AppointmentHandler struct {
	uc *booking.UseCase
}

// NewAppointmentHandler construye el handler de citas.
func NewAppointmentHandler(uc *booking.UseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Book godoc
// @Summary      Reservar cita
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BookAppointmentRequest  true  "pet_name, service, price, date"
// @Success      201  {object}  dto.AppointmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *AppointmentHandler) Book(c *fiber.Ctx) error {
	var in dto.BookAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	apt, err := h.uc.Book(c.Context(), GetUserID(c), GetUserName(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "pet_name, service y date (YYYY-MM-DD) son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe una cita activa para ese día"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(apt)
}

// List godoc
// @Summary      Listar citas (staff: todas; cliente: propias)
// @Tags         appointments
// @Produce      json
// @Success      200  {array}  dto.AppointmentResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	var (
		apts []dto.AppointmentResponse
		err  error
	)
	if GetRole(c) == entity.RoleAdmin {
		apts, err = h.uc.ListAll(c.Context())
	} else {
		apts, err = h.uc.ListByUser(c.Context(), GetUserID(c))
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(apts)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de una cita (staff)
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "id de la cita"
// @Param        body  body  dto.UpdateAppointmentStatusRequest  true  "status destino"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id}/status [put]
func (h *AppointmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAppointmentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	apt, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(apt)
}

// Cancel godoc
// @Summary      Cancelar una cita propia
// @Tags         appointments
// @Produce      json
// @Param        id  path  string  true  "id de la cita"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [delete]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	err := h.uc.Cancel(c.Context(), GetUserID(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cita no encontrada"})
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el dueño puede cancelar la cita"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "la cita ya no puede cancelarse"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
