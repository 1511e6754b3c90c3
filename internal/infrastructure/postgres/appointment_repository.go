package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/internal/domain/repository"
	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación del puerto AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewAppointmentRepository construye el adaptador de persistencia para citas.
func NewAppointmentRepository(pool *pgxpool.Pool, log *logger.Logger) *AppointmentRepo {
	return &AppointmentRepo{pool: pool, log: log}
}

const appointmentColumns = `id, user_id, user_name, pet_name, service, price, date, status, created_at, cancelled_at`

// Create persiste una cita nueva.
func (r *AppointmentRepo) Create(ctx context.Context, apt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (` + appointmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.pool.Exec(ctx, query,
		apt.ID, apt.UserID, apt.UserName, apt.PetName, apt.Service, apt.Price,
		apt.Date, apt.Status, apt.CreatedAt, apt.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por id; nil si no existe.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	var a entity.Appointment
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.UserName, &a.PetName, &a.Service, &a.Price,
		&a.Date, &a.Status, &a.CreatedAt, &a.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return &a, nil
}

// GetByUserAndDate busca una cita activa del usuario en la fecha dada.
func (r *AppointmentRepo) GetByUserAndDate(ctx context.Context, userID, date string) (*entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1 AND date = $2 AND status <> $3
		LIMIT 1`
	var a entity.Appointment
	err := r.pool.QueryRow(ctx, query, userID, date, entity.AppointmentStatusCancelled).Scan(
		&a.ID, &a.UserID, &a.UserName, &a.PetName, &a.Service, &a.Price,
		&a.Date, &a.Status, &a.CreatedAt, &a.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment by user and date: %w", err)
	}
	return &a, nil
}

// ListByStatus devuelve las citas con el estado dado, created_at ascendente.
func (r *AppointmentRepo) ListByStatus(ctx context.Context, status string) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status = $1
		ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("list appointments by status: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListAll devuelve todas las citas no canceladas, created_at descendente.
func (r *AppointmentRepo) ListAll(ctx context.Context) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE status <> $1
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, entity.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// ListByUser devuelve las citas no canceladas del usuario, created_at descendente.
func (r *AppointmentRepo) ListByUser(ctx context.Context, userID string) ([]entity.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = $1 AND status <> $2
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID, entity.AppointmentStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("list appointments by user: %w", err)
	}
	defer rows.Close()
	return scanAppointments(rows)
}

// UpdateStatus cambia el estado; cancelled_at solo se escribe al cancelar.
func (r *AppointmentRepo) UpdateStatus(ctx context.Context, id, status string, cancelledAt *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2, cancelled_at = $3 WHERE id = $1`,
		id, status, cancelledAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Watch emite una señal por cada cambio en appointments (trigger NOTIFY).
func (r *AppointmentRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchChannel(ctx, r.pool, r.log, channelAppointmentsChanged)
}

func scanAppointments(rows pgx.Rows) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.UserName, &a.PetName, &a.Service, &a.Price,
			&a.Date, &a.Status, &a.CreatedAt, &a.CancelledAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
