package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/petcare-pro/internal/domain/entity"
	"github.com/tu-usuario/petcare-pro/internal/domain/repository"
	"github.com/tu-usuario/petcare-pro/pkg/logger"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewOrderRepository construye el adaptador de persistencia para líneas de orden.
func NewOrderRepository(pool *pgxpool.Pool, log *logger.Logger) *OrderRepo {
	return &OrderRepo{pool: pool, log: log}
}

const orderLineColumns = `id, user_id, user_name, product_id, product_name, product_image, unit_price, quantity, status, created_at`

// CreateLines inserta todas las líneas de un checkout en un solo batch.
func (r *OrderRepo) CreateLines(ctx context.Context, lines []*entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (` + orderLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(query,
			l.ID, l.UserID, l.UserName, l.ProductID, l.ProductName, l.ProductImage,
			l.UnitPrice, l.Quantity, l.Status, l.CreatedAt,
		)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una línea por id; nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.OrderLine, error) {
	query := `SELECT ` + orderLineColumns + ` FROM order_lines WHERE id = $1`
	var l entity.OrderLine
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.UserID, &l.UserName, &l.ProductID, &l.ProductName, &l.ProductImage,
		&l.UnitPrice, &l.Quantity, &l.Status, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order line: %w", err)
	}
	return &l, nil
}

// ListByStatuses devuelve las líneas con estado en statuses, created_at ascendente.
func (r *OrderRepo) ListByStatuses(ctx context.Context, statuses []string) ([]entity.OrderLine, error) {
	query := `
		SELECT ` + orderLineColumns + `
		FROM order_lines
		WHERE status = ANY($1)
		ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, statuses)
	if err != nil {
		return nil, fmt.Errorf("list order lines by status: %w", err)
	}
	defer rows.Close()
	return scanOrderLines(rows)
}

// ListByUser devuelve las líneas no canceladas del usuario, created_at descendente.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]entity.OrderLine, error) {
	query := `
		SELECT ` + orderLineColumns + `
		FROM order_lines
		WHERE user_id = $1 AND status <> $2
		ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID, entity.OrderStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("list order lines by user: %w", err)
	}
	defer rows.Close()
	return scanOrderLines(rows)
}

// UpdateStatus cambia el estado de una línea.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE order_lines SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order line status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete elimina una línea.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM order_lines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order line: %w", err)
	}
	return nil
}

// Watch emite una señal por cada cambio en order_lines (trigger NOTIFY).
func (r *OrderRepo) Watch(ctx context.Context) (<-chan struct{}, error) {
	return watchChannel(ctx, r.pool, r.log, channelOrdersChanged)
}

func scanOrderLines(rows pgx.Rows) ([]entity.OrderLine, error) {
	var out []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.UserName, &l.ProductID, &l.ProductName, &l.ProductImage,
			&l.UnitPrice, &l.Quantity, &l.Status, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
