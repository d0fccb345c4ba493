package ports

import (
	"context"
	"time"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// ListOrdersFilter scopes an order listing to one party and an optional date range.
// Exactly one of CustomerID and SellerID is set by the service layer.
type ListOrdersFilter struct {
	CustomerID *int64
	SellerID   *int64
	From       time.Time // optional: placed_at >= From
	To         time.Time // optional: placed_at < To
}

// OrderRepository persists orders. IDs are assigned by the repository.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
}

// OrderIdempotencyStore claims Idempotency-Key values before an order is
// placed and remembers which order each one produced.
type OrderIdempotencyStore interface {
	// Reserve claims key for the caller. When the key is already claimed it
	// returns reserved=false with the stored order id, or zero while that
	// order is still being placed.
	Reserve(ctx context.Context, customerID int64, key string) (reserved bool, orderID int64, err error)
	// Complete records the order placed under a reserved key.
	Complete(ctx context.Context, customerID int64, key string, orderID int64) error
	// Release drops a reservation whose order was never placed.
	Release(ctx context.Context, customerID int64, key string) error
}
