package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresIdempotencyRepo implements IdempotencyRepo using PostgreSQL.
type PostgresIdempotencyRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresIdempotencyRepo creates a PostgresIdempotencyRepo.
func NewPostgresIdempotencyRepo(pool *pgxpool.Pool) *PostgresIdempotencyRepo {
	return &PostgresIdempotencyRepo{pool: pool}
}

func (r *PostgresIdempotencyRepo) Get(ctx context.Context, key string) (*IdempotencyRecord, error) {
	const q = `
SELECT key, ttl_at, response_status, response_body, created_at
FROM idempotency_keys
WHERE key = $1 AND ttl_at >= now()`
	rec := &IdempotencyRecord{}
	err := r.pool.QueryRow(ctx, q, key).
		Scan(&rec.Key, &rec.TTLAt, &rec.ResponseStatus, &rec.ResponseBody, &rec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get idempotency key: %w", err)
	}
	return rec, nil
}

func (r *PostgresIdempotencyRepo) Put(ctx context.Context, rec *IdempotencyRecord) error {
	const q = `
INSERT INTO idempotency_keys (key, ttl_at, response_status, response_body, created_at)
VALUES ($1, $2, $3, $4, now())`
	_, err := r.pool.Exec(ctx, q, rec.Key, rec.TTLAt, rec.ResponseStatus, rec.ResponseBody)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrConflict
		}
		return fmt.Errorf("insert idempotency key: %w", err)
	}
	return nil
}

// SweepExpired counts and deletes expired rows inside one transaction so
// the count reflects the same snapshot the delete acts on. The delete
// selects victims FOR UPDATE SKIP LOCKED: concurrent sweepers never block
// each other and each expired row is deleted by at most one of them.
// In-flight inserts and reads of live keys are untouched; the predicate
// is strictly ttl_at < now().
func (r *PostgresIdempotencyRepo) SweepExpired(ctx context.Context, batch int) (expired, deleted, remaining int64, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	const countQ = `SELECT count(*) FROM idempotency_keys WHERE ttl_at < now()`
	if err := tx.QueryRow(ctx, countQ).Scan(&expired); err != nil {
		return 0, 0, 0, fmt.Errorf("count expired: %w", err)
	}
	if expired == 0 {
		return 0, 0, 0, tx.Commit(ctx)
	}

	const deleteQ = `
DELETE FROM idempotency_keys
WHERE key IN (
	SELECT key FROM idempotency_keys
	WHERE ttl_at < now()
	ORDER BY ttl_at
	LIMIT $1
	FOR UPDATE SKIP LOCKED
)`
	tag, err := tx.Exec(ctx, deleteQ, batch)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("delete expired: %w", err)
	}
	deleted = tag.RowsAffected()

	// Remainder is reported for observability; nonzero after a full
	// batch just means the next cycle continues the sweep.
	if err := tx.QueryRow(ctx, countQ).Scan(&remaining); err != nil {
		return 0, 0, 0, fmt.Errorf("recount expired: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, 0, fmt.Errorf("commit: %w", err)
	}
	return expired, deleted, remaining, nil
}
