package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una línea de orden.
// El flujo avanza solo hacia adelante: Pending → Confirmed → Received.
// Cancelled es terminal y solo se alcanza desde Pending.
const (
	OrderStatusPending   = "Pending"
	OrderStatusConfirmed = "Confirmed"
	OrderStatusReceived  = "Received"
	OrderStatusCancelled = "Cancelled"
)

// OrderLine representa un ítem comprado en un checkout. Un checkout con N
// ítems del carrito genera N líneas que comparten userId y createdAt; ese par
// (al milisegundo) es la llave que las agrupa en una orden lógica.
type OrderLine struct {
	ID           string
	UserID       string
	UserName     string
	ProductID    string
	ProductName  string
	ProductImage string
	UnitPrice    decimal.Decimal
	Quantity     int
	Status       string
	CreatedAt    time.Time
}

// Total devuelve el subtotal de la línea (precio unitario × cantidad).
func (l OrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// GroupKey devuelve la llave de agrupación de la orden lógica:
// userId + timestamp de creación en milisegundos.
func (l OrderLine) GroupKey() string {
	return l.UserID + "_" + epochMillisString(l.CreatedAt)
}

// CanTransitionOrder indica si el cambio de estado from → to es válido.
func CanTransitionOrder(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusReceived
	default:
		// Received y Cancelled son terminales
		return false
	}
}
