package dto

import (
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// BookAppointmentRequest reserva de una cita de servicio.
type BookAppointmentRequest struct {
	PetName string `json:"pet_name"`
	Service string `json:"service"` // etiqueta libre, ej. "Pet Grooming (full)"
	Price   string `json:"price"`   // texto con moneda, ej. "₱850"
	Date    string `json:"date"`    // "YYYY-MM-DD"
}

// UpdateAppointmentStatusRequest cambio de estado por staff.
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status"`
}

// AppointmentResponse representación pública de una cita.
type AppointmentResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	UserName    string     `json:"user_name"`
	PetName     string     `json:"pet_name"`
	Service     string     `json:"service"`
	Price       string     `json:"price"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// ToAppointmentResponse convierte la entidad en DTO.
func ToAppointmentResponse(a *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		UserName:    a.UserName,
		PetName:     a.PetName,
		Service:     a.Service,
		Price:       a.Price,
		Date:        a.Date,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		CancelledAt: a.CancelledAt,
	}
}
