package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresProductRepo implements ProductRepo using PostgreSQL.
type PostgresProductRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepo creates a PostgresProductRepo.
func NewPostgresProductRepo(pool *pgxpool.Pool) *PostgresProductRepo {
	return &PostgresProductRepo{pool: pool}
}

func (r *PostgresProductRepo) Insert(ctx context.Context, p *Product) error {
	const q = `
INSERT INTO products (sku, name, price_cents, currency, created_at)
VALUES ($1, $2, $3, $4, now())
RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, q, p.SKU, p.Name, p.PriceCents, p.Currency).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepo) GetByID(ctx context.Context, id int64) (*Product, error) {
	const q = `
SELECT id, sku, name, price_cents, currency, created_at
FROM products WHERE id = $1`
	p := &Product{}
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.SKU, &p.Name, &p.PriceCents, &p.Currency, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepo) List(ctx context.Context, limit int, after *TimeSeek) ([]Product, error) {
	var rows pgx.Rows
	var err error

	if after != nil {
		const q = `
SELECT id, sku, name, price_cents, currency, created_at
FROM products
WHERE (created_at, id) > ($1, $2)
ORDER BY created_at, id
LIMIT $3`
		rows, err = r.pool.Query(ctx, q, after.At, after.ID, limit+1)
	} else {
		const q = `
SELECT id, sku, name, price_cents, currency, created_at
FROM products
ORDER BY created_at, id
LIMIT $1`
		rows, err = r.pool.Query(ctx, q, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var items []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.PriceCents, &p.Currency, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
