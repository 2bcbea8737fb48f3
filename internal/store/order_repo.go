package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresOrderRepo implements OrderRepo using PostgreSQL.
type PostgresOrderRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepo creates a PostgresOrderRepo.
func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{pool: pool}
}

func (r *PostgresOrderRepo) Insert(ctx context.Context, o *Order) error {
	const q = `
INSERT INTO orders (order_uid, product_id, quantity, status, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, o.OrderUID, o.ProductID, o.Quantity, o.Status).
		Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepo) GetByUID(ctx context.Context, uid uuid.UUID) (*Order, error) {
	const q = `
SELECT id, order_uid, product_id, quantity, status, created_at
FROM orders WHERE order_uid = $1`
	o := &Order{}
	err := r.pool.QueryRow(ctx, q, uid).
		Scan(&o.ID, &o.OrderUID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

func (r *PostgresOrderRepo) List(ctx context.Context, limit int, after *TimeSeek) ([]Order, error) {
	var rows pgx.Rows
	var err error

	if after != nil {
		const q = `
SELECT id, order_uid, product_id, quantity, status, created_at
FROM orders
WHERE (created_at, id) > ($1, $2)
ORDER BY created_at, id
LIMIT $3`
		rows, err = r.pool.Query(ctx, q, after.At, after.ID, limit+1)
	} else {
		const q = `
SELECT id, order_uid, product_id, quantity, status, created_at
FROM orders
ORDER BY created_at, id
LIMIT $1`
		rows, err = r.pool.Query(ctx, q, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var items []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.OrderUID, &o.ProductID, &o.Quantity, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
