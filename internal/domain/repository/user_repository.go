package repository

import (
	"context"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// UserRepository puerto de persistencia para cuentas de usuario.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error

	// GetByID obtiene un usuario por id; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail obtiene un usuario por email; nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// CountAll devuelve el total de cuentas registradas (KPI de clientes).
	CountAll(ctx context.Context) (int, error)
}
