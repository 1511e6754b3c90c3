// Package orders casos de uso del checkout y del ciclo de vida de órdenes.
package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/internal/domain/metrics"
	"github.com/tu-usuario/petcare-pro/internal/domain/repository"
)

// UseCase checkout, historial y transiciones de estado de órdenes.
type UseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

// NewUseCase construye el caso de uso de órdenes.
func NewUseCase(orderRepo repository.OrderRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{orderRepo: orderRepo, productRepo: productRepo, now: time.Now}
}

// Checkout convierte el carrito en líneas de orden. Todas las líneas comparten
// el mismo CreatedAt: ese timestamp (junto al userId) es lo que las agrupa en
// una orden lógica, así que se captura UNA vez antes del loop. Cada línea
// copia nombre, imagen y precio del producto al momento de la compra.
func (uc *UseCase) Checkout(ctx context.Context, userID, userName string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	createdAt := uc.now()
	lines := make([]*entity.OrderLine, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		lines = append(lines, &entity.OrderLine{
			ID:           uuid.New().String(),
			UserID:       userID,
			UserName:     userName,
			ProductID:    product.ID,
			ProductName:  product.Name,
			ProductImage: product.Image,
			UnitPrice:    product.Price,
			Quantity:     item.Quantity,
			Status:       entity.OrderStatusPending,
			CreatedAt:    createdAt,
		})
	}

	if err := uc.orderRepo.CreateLines(ctx, lines); err != nil {
		return nil, err
	}

	flat := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		flat = append(flat, *l)
	}
	grouped := metrics.GroupLines(flat)
	return &dto.CheckoutResponse{Order: grouped[0]}, nil
}

// ListByUser devuelve el historial del usuario como órdenes lógicas,
// fecha descendente (excluye canceladas).
func (uc *UseCase) ListByUser(ctx context.Context, userID string) (*dto.OrdersResponse, error) {
	lines, err := uc.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.OrdersResponse{Orders: metrics.GroupLines(lines)}, nil
}

// ListByStatuses devuelve órdenes lógicas con líneas en los estados dados
// (vista de staff).
func (uc *UseCase) ListByStatuses(ctx context.Context, statuses []string) (*dto.OrdersResponse, error) {
	lines, err := uc.orderRepo.ListByStatuses(ctx, statuses)
	if err != nil {
		return nil, err
	}
	return &dto.OrdersResponse{Orders: metrics.GroupLines(lines)}, nil
}

// UpdateStatus transición de estado de una línea por staff.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateOrderStatusRequest) error {
	line, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	if !entity.CanTransitionOrder(line.Status, in.Status) {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(ctx, id, in.Status)
}

// Cancel cancela una línea propia del cliente. Solo el dueño, y solo mientras
// la orden siga Pending.
func (uc *UseCase) Cancel(ctx context.Context, userID, id string) error {
	line, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	if line.UserID != userID {
		return domain.ErrForbidden
	}
	if line.Status != entity.OrderStatusPending {
		return domain.ErrInvalidTransition
	}
	return uc.orderRepo.UpdateStatus(ctx, id, entity.OrderStatusCancelled)
}

// Delete elimina una línea (acción explícita de staff).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	line, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if line == nil {
		return domain.ErrNotFound
	}
	return uc.orderRepo.Delete(ctx, id)
}
