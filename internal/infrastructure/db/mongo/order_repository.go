package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

type OrderRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders), seq: newSequence(db, collectionOrders)}
}

// Create assigns the next order id and inserts the order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	o.ID = id

	if _, err := r.col.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

// List returns the newest orders first for one customer or one seller.
func (r *OrderRepository) List(ctx context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, orderFilter(f), options.Find().SetSort(bson.D{{Key: "placed_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := []*domain.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func orderFilter(f ports.ListOrdersFilter) bson.M {
	filter := bson.M{}
	if f.CustomerID != nil {
		filter["customer_id"] = *f.CustomerID
	}
	if f.SellerID != nil {
		filter["seller_id"] = *f.SellerID
	}

	placed := bson.M{}
	if !f.From.IsZero() {
		placed["$gte"] = f.From.UTC()
	}
	if !f.To.IsZero() {
		placed["$lt"] = f.To.UTC()
	}
	if len(placed) > 0 {
		filter["placed_at"] = placed
	}
	return filter
}
