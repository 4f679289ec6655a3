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

const userColumns = `id::text, name, email, password, created_at, updated_at`

type PostgresUserRepository struct {
	pool    *pgxpool.Pool
	timeout deadline
}

func NewPostgresUserRepository(pool *pgxpool.Pool, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool, timeout: deadline(timeout)}
}

func (r *PostgresUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY seq`)
}

func (r *PostgresUserRepository) FindByName(ctx context.Context, name string) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users WHERE name = $1 ORDER BY seq`, name)
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY seq LIMIT 1`, email)
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at, updated_at
	`
	now := time.Now().UTC()
	err := r.pool.QueryRow(ctx, query,
		uuid.New(),
		user.Name,
		user.Email,
		user.Password,
		now,
		now,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	if _, err := uuid.Parse(user.ID); err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	query := `
		UPDATE users
		SET name = $1, email = $2, password = $3, updated_at = $4
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.Password,
		time.Now().UTC(),
		user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update user %s: %w", user.ID, err)
	}
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) query(ctx context.Context, query string, args ...any) ([]models.User, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.Password,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) queryRow(ctx context.Context, query string, args ...any) (*models.User, error) {
	ctx, cancel := r.timeout.context(ctx)
	defer cancel()

	user := &models.User{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}
