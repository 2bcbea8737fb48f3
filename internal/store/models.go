package store

import (
	"time"

	"github.com/google/uuid"
)

// Product is a row in the products table.
type Product struct {
	ID         int64     `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

// Order is a row in the orders table.
type Order struct {
	ID        int64     `json:"id"`
	OrderUID  uuid.UUID `json:"order_uid"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Order lifecycle states.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

// Supplier is a row in the suppliers table.
type Supplier struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// IdempotencyRecord is a row in the idempotency_keys table. Rows are
// written once by request handlers and deleted only by the janitor once
// ttl_at has passed.
type IdempotencyRecord struct {
	Key            string
	TTLAt          time.Time
	ResponseStatus int
	ResponseBody   []byte
	CreatedAt      time.Time
}

// TimeSeek is a decoded cursor position for listings ordered by
// (timestamp, id) ascending.
type TimeSeek struct {
	At time.Time
	ID int64
}

// TextSeek is a decoded cursor position for listings ordered by
// (text, id) ascending.
type TextSeek struct {
	Text string
	ID   int64
}
