package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// AppointmentRepository puerto de persistencia y suscripción para citas.
type AppointmentRepository interface {
	Create(ctx context.Context, apt *entity.Appointment) error

	// GetByID obtiene una cita por id; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)

	// GetByUserAndDate busca una cita activa (no cancelada) del usuario en la
	// fecha dada; nil si no hay. Soporta la regla de una cita por usuario y día.
	GetByUserAndDate(ctx context.Context, userID, date string) (*entity.Appointment, error)

	// ListByStatus devuelve las citas con el estado dado, created_at
	// ascendente. Es el feed del agregador de métricas (Concluded).
	ListByStatus(ctx context.Context, status string) ([]entity.Appointment, error)

	// ListAll devuelve todas las citas no canceladas, created_at descendente
	// (vista de staff).
	ListAll(ctx context.Context) ([]entity.Appointment, error)

	// ListByUser devuelve las citas no canceladas del usuario, created_at
	// descendente.
	ListByUser(ctx context.Context, userID string) ([]entity.Appointment, error)

	// UpdateStatus cambia el estado; cancelledAt se persiste solo cuando el
	// nuevo estado es Cancelled.
	UpdateStatus(ctx context.Context, id, status string, cancelledAt *time.Time) error

	// Watch devuelve un canal que emite una señal por cada cambio en la
	// colección de citas. El canal se cierra cuando ctx termina.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
