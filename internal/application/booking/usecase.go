// Package booking casos de uso del ciclo de vida de citas de servicio.
package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/internal/domain/repository"
)

// UseCase reservas, listados y transiciones de estado de citas.
type UseCase struct {
	repo repository.AppointmentRepository
	now  func() time.Time
}

// NewUseCase construye el caso de uso de citas.
func NewUseCase(repo repository.AppointmentRepository) *UseCase {
	return &UseCase{repo: repo, now: time.Now}
}

// Book reserva una cita para el usuario autenticado. La fecha debe ser
// "YYYY-MM-DD" válida y el usuario no puede tener otra cita activa ese día.
func (uc *UseCase) Book(ctx context.Context, userID, userName string, in dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	if in.PetName == "" || in.Service == "" || in.Date == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetByUserAndDate(ctx, userID, in.Date)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	apt := &entity.Appointment{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserName:  userName,
		PetName:   in.PetName,
		Service:   in.Service,
		Price:     in.Price,
		Date:      in.Date,
		Status:    entity.AppointmentStatusPending,
		CreatedAt: uc.now(),
	}
	if err := uc.repo.Create(ctx, apt); err != nil {
		return nil, err
	}
	resp := dto.ToAppointmentResponse(apt)
	return &resp, nil
}

// ListAll devuelve todas las citas no canceladas (vista de staff).
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.AppointmentResponse, error) {
	apts, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toResponses(apts), nil
}

// ListByUser devuelve las citas no canceladas del usuario.
func (uc *UseCase) ListByUser(ctx context.Context, userID string) ([]dto.AppointmentResponse, error) {
	apts, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toResponses(apts), nil
}

// UpdateStatus transición de estado por staff (Confirmar, Concluir, Cancelar).
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	apt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransitionAppointment(apt.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}

	var cancelledAt *time.Time
	if in.Status == entity.AppointmentStatusCancelled {
		t := uc.now()
		cancelledAt = &t
	}
	if err := uc.repo.UpdateStatus(ctx, id, in.Status, cancelledAt); err != nil {
		return nil, err
	}

	apt.Status = in.Status
	apt.CancelledAt = cancelledAt
	resp := dto.ToAppointmentResponse(apt)
	return &resp, nil
}

// Cancel cancela una cita propia del cliente. Solo el dueño puede cancelar y
// solo mientras el servicio no se haya prestado.
func (uc *UseCase) Cancel(ctx context.Context, userID, id string) error {
	apt, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if apt == nil {
		return domain.ErrNotFound
	}
	if apt.UserID != userID {
		return domain.ErrForbidden
	}
	if !entity.CanTransitionAppointment(apt.Status, entity.AppointmentStatusCancelled) {
		return domain.ErrInvalidTransition
	}
	t := uc.now()
	return uc.repo.UpdateStatus(ctx, id, entity.AppointmentStatusCancelled, &t)
}

func toResponses(apts []entity.Appointment) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, 0, len(apts))
	for i := range apts {
		out = append(out, dto.ToAppointmentResponse(&apts[i]))
	}
	return out
}
