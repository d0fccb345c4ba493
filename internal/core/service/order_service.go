package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
	"github.com/cymbol-superstore/marketplace-api/internal/core/security"
)

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	idem     ports.OrderIdempotencyStore
	logger   zerolog.Logger
	now      func() time.Time
}

// NewOrderService wires an OrderService. idem may be nil, in which case
// Idempotency-Key values are ignored.
func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, idem ports.OrderIdempotencyStore, logger zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, idem: idem, logger: logger, now: time.Now}
}

// PlaceOrder buys a product for the calling customer. The idempotency key is
// claimed before the order is written: a key that already produced an order
// replays it unchanged, and a key whose order is still being placed fails with
// domain.ErrOrderInProgress.
func (s *OrderService) PlaceOrder(ctx context.Context, id domain.Identity, in ports.PlaceOrderInput) (_ *ports.PlaceOrderResult, err error) {
	if err := security.RequireRole(id, domain.RoleCustomer); err != nil {
		return nil, err
	}

	key := in.IdempotencyKey
	if key != "" && s.idem != nil {
		reserved, orderID, rerr := s.idem.Reserve(ctx, id.ID, key)
		switch {
		case rerr != nil:
			s.logger.Warn().Err(rerr).Str("idempotency_key", key).Msg("idempotency reservation failed, placing without it")
			key = ""
		case !reserved && orderID == 0:
			return nil, domain.ErrOrderInProgress
		case !reserved:
			existing, ferr := s.orders.FindByID(ctx, orderID)
			if ferr != nil {
				return nil, ferr
			}
			s.logger.Info().Str("idempotency_key", key).Int64("order_id", orderID).Msg("idempotent replay")
			return &ports.PlaceOrderResult{Order: existing, AlreadyExisted: true}, nil
		default:
			defer func() {
				if err == nil {
					return
				}
				if relErr := s.idem.Release(context.WithoutCancel(ctx), id.ID, key); relErr != nil {
					s.logger.Warn().Err(relErr).Str("idempotency_key", key).Msg("failed to release idempotency key")
				}
			}()
		}
	}

	product, err := s.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != in.SellerID {
		return nil, domain.ErrNotAcceptable
	}

	order := &domain.Order{
		CustomerID: id.ID,
		SellerID:   product.SellerID,
		ProductID:  product.ID,
		Price:      product.Price,
		IsCOD:      in.IsCOD,
		Status:     domain.OrderStatusPlaced,
		PlacedAt:   s.now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id.ID).Msg("failed to place order")
		return nil, err
	}

	if key != "" && s.idem != nil {
		if err := s.idem.Complete(context.WithoutCancel(ctx), id.ID, key, order.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("failed to record idempotency key")
		}
	}

	s.logger.Info().Int64("order_id", order.ID).Int64("customer_id", id.ID).Int64("seller_id", order.SellerID).Msg("order placed")
	return &ports.PlaceOrderResult{Order: order}, nil
}

// GetOrder returns an order if the caller is its customer or its seller.
func (s *OrderService) GetOrder(ctx context.Context, id domain.Identity, orderID int64) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.VisibleTo(id) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

// ListMyOrders lists orders where the caller is the buyer, or the seller when
// the identity is a seller one.
func (s *OrderService) ListMyOrders(ctx context.Context, id domain.Identity, q ports.OrderQuery) ([]*domain.Order, error) {
	filter := ports.ListOrdersFilter{From: q.From, To: q.To}
	party := id.ID
	if id.IsSeller() {
		filter.SellerID = &party
	} else {
		filter.CustomerID = &party
	}
	return s.orders.List(ctx, filter)
}
