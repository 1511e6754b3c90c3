package dto

import "github.com/tu-usuario/petcare-pro/internal/domain/metrics"

// CheckoutItemRequest un ítem del carrito al momento del checkout.
type CheckoutItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest cuerpo de POST /api/orders/checkout.
type CheckoutRequest struct {
	Items []CheckoutItemRequest `json:"items"`
}

// CheckoutResponse la orden lógica recién creada.
type CheckoutResponse struct {
	Order metrics.LogicalOrder `json:"order"`
}

// UpdateOrderStatusRequest cambio de estado de una línea por staff.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrdersResponse listado de órdenes lógicas.
type OrdersResponse struct {
	Orders []metrics.LogicalOrder `json:"orders"`
}
