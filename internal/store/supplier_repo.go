package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSupplierRepo implements SupplierRepo using PostgreSQL.
type PostgresSupplierRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresSupplierRepo creates a PostgresSupplierRepo.
func NewPostgresSupplierRepo(pool *pgxpool.Pool) *PostgresSupplierRepo {
	return &PostgresSupplierRepo{pool: pool}
}

func (r *PostgresSupplierRepo) List(ctx context.Context, limit int, after *TextSeek) ([]Supplier, error) {
	var rows pgx.Rows
	var err error

	if after != nil {
		const q = `
SELECT id, name, country, created_at
FROM suppliers
WHERE (name, id) > ($1, $2)
ORDER BY name, id
LIMIT $3`
		rows, err = r.pool.Query(ctx, q, after.Text, after.ID, limit+1)
	} else {
		const q = `
SELECT id, name, country, created_at
FROM suppliers
ORDER BY name, id
LIMIT $1`
		rows, err = r.pool.Query(ctx, q, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var items []Supplier
	for rows.Next() {
		var s Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Country, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
