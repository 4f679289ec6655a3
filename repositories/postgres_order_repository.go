package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"orders-api/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const orderColumns = `id::text, email, name, status, created_at, updated_at`

type PostgresOrderRepository struct {
	pool    *pgxpool.Pool
	timeout deadline
}

func NewPostgresOrderRepository(pool *pgxpool.Pool, timeout time.Duration) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool, timeout: deadline(timeout)}
}

func (r *PostgresOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY seq`)
}

func (r *PostgresOrderRepository) FindByStatus(ctx context.Context, status string) ([]models.Order, error) {
	return r.query(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = $1 ORDER BY seq`, status)
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	order := &models.Order{}
	err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&order.ID,
		&order.Email,
		&order.Name,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query order %s: %w", id, err)
	}
	return order, nil
}

func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, email, name, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at, updated_at
	`
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx, query,
		uuid.New(),
		order.Email,
		order.Name,
		order.Status,
		now,
		now,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepository) Update(ctx context.Context, order *models.Order) error {
	if _, err := uuid.Parse(order.ID); err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	query := `
		UPDATE orders
		SET email = $1, name = $2, status = $3, updated_at = $4
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		order.Email,
		order.Name,
		order.Status,
		time.Now().UTC(),
		order.ID,
	).Scan(&order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update order %s: %w", order.ID, err)
	}
	return nil
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) query(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var order models.Order
		if err := rows.Scan(
			&order.ID,
			&order.Email,
			&order.Name,
			&order.Status,
			&order.CreatedAt,
			&order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
