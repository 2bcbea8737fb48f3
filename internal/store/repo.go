package store

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepo defines product storage operations.
type ProductRepo interface {
	// Insert stores a product. Returns ErrConflict if the SKU already exists.
	Insert(ctx context.Context, p *Product) error

	// GetByID retrieves a product by primary key.
	GetByID(ctx context.Context, id int64) (*Product, error)

	// List returns up to limit+1 products ordered by (created_at, id)
	// ascending, seeked strictly past after when supplied. The extra row
	// lets the caller detect a further page without a COUNT query.
	List(ctx context.Context, limit int, after *TimeSeek) ([]Product, error)
}

// OrderRepo defines order storage operations.
type OrderRepo interface {
	// Insert stores an order. The caller assigns OrderUID.
	Insert(ctx context.Context, o *Order) error

	// GetByUID retrieves an order by its public identifier.
	GetByUID(ctx context.Context, uid uuid.UUID) (*Order, error)

	// List returns up to limit+1 orders ordered by (created_at, id)
	// ascending, seeked strictly past after when supplied.
	List(ctx context.Context, limit int, after *TimeSeek) ([]Order, error)
}

// SupplierRepo defines supplier storage operations.
type SupplierRepo interface {
	// List returns up to limit+1 suppliers ordered by (name, id)
	// ascending, seeked strictly past after when supplied.
	List(ctx context.Context, limit int, after *TextSeek) ([]Supplier, error)
}

// IdempotencyRepo defines idempotency key storage. Request handlers only
// read and insert; expired rows are reclaimed by the janitor.
type IdempotencyRepo interface {
	// Get retrieves a live record. Expired-but-unswept keys are treated
	// as absent. Returns ErrNotFound when no live record exists.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)

	// Put stores a record. Returns ErrConflict when the key already
	// exists; the first writer wins.
	Put(ctx context.Context, rec *IdempotencyRecord) error

	// SweepExpired deletes up to batch expired rows inside one
	// transaction, skipping rows locked by a concurrent deleter. It
	// reports the expired count observed before the delete, the rows
	// actually deleted, and the expired rows remaining afterwards.
	SweepExpired(ctx context.Context, batch int) (expired, deleted, remaining int64, err error)
}
