package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la tienda.
// Las líneas de orden copian nombre, imagen y precio al momento del checkout,
// así que editar el catálogo no altera órdenes históricas.
type Product struct {
	ID          string
	Name        string
	Description string
	Image       string
	Price       decimal.Decimal
	Stock       int
	Category    string // Food | Toys | Accessories | ...
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
