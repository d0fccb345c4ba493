package ports

import (
	"context"
	"time"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// PlaceOrderInput carries a customer's purchase request.
type PlaceOrderInput struct {
	ProductID      int64
	SellerID       int64
	IsCOD          bool
	IdempotencyKey string
}

// PlaceOrderResult is returned by PlaceOrder.
type PlaceOrderResult struct {
	Order *domain.Order
	// AlreadyExisted is true when the Idempotency-Key matched an earlier order.
	AlreadyExisted bool
}

// OrderQuery narrows an order listing to a date range. Zero values mean unbounded.
type OrderQuery struct {
	From time.Time
	To   time.Time
}

// OrderService places and retrieves orders.
type OrderService interface {
	PlaceOrder(ctx context.Context, id domain.Identity, in PlaceOrderInput) (*PlaceOrderResult, error)
	GetOrder(ctx context.Context, id domain.Identity, orderID int64) (*domain.Order, error)
	ListMyOrders(ctx context.Context, id domain.Identity, q OrderQuery) ([]*domain.Order, error)
}
