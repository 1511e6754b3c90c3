package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/petcare-pro/internal/application/dto"
	"github.com/tu-usuario/petcare-pro/internal/domain"
	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
)

// memAppointmentRepo repo en memoria para los tests del caso de uso.
type memAppointmentRepo struct {
	items map[string]*entity.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{items: map[string]*entity.Appointment{}}
}

func (m *memAppointmentRepo) Create(ctx context.Context, apt *entity.Appointment) error {
	cp := *apt
	m.items[apt.ID] = &cp
	return nil
}

func (m *memAppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	apt, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	cp := *apt
	return &cp, nil
}

func (m *memAppointmentRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*entity.Appointment, error) {
	for _, apt := range m.items {
		if apt.UserID == userID && apt.Date == date && apt.Status != entity.AppointmentStatusCancelled {
			cp := *apt
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memAppointmentRepo) ListByStatus(ctx context.Context, status string) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, apt := range m.items {
		if apt.Status == status {
			out = append(out, *apt)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListAll(ctx context.Context) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, apt := range m.items {
		if apt.Status != entity.AppointmentStatusCancelled {
			out = append(out, *apt)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, apt := range m.items {
		if apt.UserID == userID && apt.Status != entity.AppointmentStatusCancelled {
			out = append(out, *apt)
		}
	}
	return out, nil
}

func (m *memAppointmentRepo) UpdateStatus(ctx context.Context, id, status string, cancelledAt *time.Time) error {
	apt, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	apt.Status = status
	apt.CancelledAt = cancelledAt
	return nil
}

func (m *memAppointmentRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{})
	return ch, nil
}

func bookRequest() dto.BookAppointmentRequest {
	return dto.BookAppointmentRequest{
		PetName: "Firulais",
		Service: "Pet Grooming (full)",
		Price:   "₱850",
		Date:    "2024-03-15",
	}
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	repo := newMemAppointmentRepo()
	uc := NewUseCase(repo)

	resp, err := uc.Book(context.Background(), "u1", "Ana", bookRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "Ana", resp.UserName)
	assert.Equal(t, entity.AppointmentStatusPending, resp.Status)
	assert.Equal(t, "₱850", resp.Price)
}

func TestBookRejectsDuplicateDayForSameUser(t *testing.T) {
	repo := newMemAppointmentRepo()
	uc := NewUseCase(repo)

	_, err := uc.Book(context.Background(), "u1", "Ana", bookRequest())
	require.NoError(t, err)

	_, err = uc.Book(context.Background(), "u1", "Ana", bookRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Otro usuario sí puede reservar el mismo día
	_, err = uc.Book(context.Background(), "u2", "Luis", bookRequest())
	assert.NoError(t, err)
}

func TestBookValidatesInput(t *testing.T) {
	uc := NewUseCase(newMemAppointmentRepo())

	in := bookRequest()
	in.Date = "15/03/2024"
	_, err := uc.Book(context.Background(), "u1", "Ana", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = bookRequest()
	in.PetName = ""
	_, err = uc.Book(context.Background(), "u1", "Ana", in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatusEnforcesTransitions(t *testing.T) {
	repo := newMemAppointmentRepo()
	uc := NewUseCase(repo)

	resp, err := uc.Book(context.Background(), "u1", "Ana", bookRequest())
	require.NoError(t, err)

	// Pending → Concluded es un salto inválido
	_, err = uc.UpdateStatus(context.Background(), resp.ID, dto.UpdateAppointmentStatusRequest{Status: entity.AppointmentStatusConcluded})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// Pending → Confirmed → Concluded
	_, err = uc.UpdateStatus(context.Background(), resp.ID, dto.UpdateAppointmentStatusRequest{Status: entity.AppointmentStatusConfirmed})
	require.NoError(t, err)
	updated, err := uc.UpdateStatus(context.Background(), resp.ID, dto.UpdateAppointmentStatusRequest{Status: entity.AppointmentStatusConcluded})
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusConcluded, updated.Status)

	// Concluded es terminal
	_, err = uc.UpdateStatus(context.Background(), resp.ID, dto.UpdateAppointmentStatusRequest{Status: entity.AppointmentStatusCancelled})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelRequiresOwnership(t *testing.T) {
	repo := newMemAppointmentRepo()
	uc := NewUseCase(repo)

	resp, err := uc.Book(context.Background(), "u1", "Ana", bookRequest())
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Cancel(context.Background(), "u2", resp.ID), domain.ErrForbidden)
	require.NoError(t, uc.Cancel(context.Background(), "u1", resp.ID))

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AppointmentStatusCancelled, stored.Status)
	assert.NotNil(t, stored.CancelledAt)
}

func TestCancelledAppointmentFreesTheDay(t *testing.T) {
	repo := newMemAppointmentRepo()
	uc := NewUseCase(repo)

	resp, err := uc.Book(context.Background(), "u1", "Ana", bookRequest())
	require.NoError(t, err)
	require.NoError(t, uc.Cancel(context.Background(), "u1", resp.ID))

	_, err = uc.Book(context.Background(), "u1", "Ana", bookRequest())
	assert.NoError(t, err)
}
