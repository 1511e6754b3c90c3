package repository

import (
	"context"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// ProductRepository puerto de persistencia para el catálogo de la tienda.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error

	// GetByID obtiene un producto por id; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// List devuelve el catálogo ordenado por nombre.
	List(ctx context.Context, limit, offset int) ([]entity.Product, error)

	Update(ctx context.Context, product *entity.Product) error

	Delete(ctx context.Context, id string) error
}
