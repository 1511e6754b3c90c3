package repository

import (
	"context"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// OrderRepository puerto de persistencia y suscripción para líneas de orden.
type OrderRepository interface {
	// CreateLines inserta todas las líneas de un checkout en un solo batch.
	// Las líneas deben compartir CreatedAt: ese timestamp las agrupa en una
	// orden lógica.
	CreateLines(ctx context.Context, lines []*entity.OrderLine) error

	// GetByID obtiene una línea por id; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.OrderLine, error)

	// ListByStatuses devuelve las líneas cuyo estado está en statuses,
	// ordenadas por created_at ascendente. Es el feed que consume el
	// agregador de métricas (Confirmed + Received).
	ListByStatuses(ctx context.Context, statuses []string) ([]entity.OrderLine, error)

	// ListByUser devuelve las líneas de un usuario, created_at descendente,
	// excluyendo Cancelled.
	ListByUser(ctx context.Context, userID string) ([]entity.OrderLine, error)

	// UpdateStatus cambia el estado de una línea. La validación de la
	// transición es responsabilidad del caso de uso.
	UpdateStatus(ctx context.Context, id, status string) error

	// Delete elimina una línea (acción explícita de staff).
	Delete(ctx context.Context, id string) error

	// Watch devuelve un canal que emite una señal por cada cambio en la
	// colección de órdenes (insert/update/delete). El canal se cierra cuando
	// ctx termina.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
