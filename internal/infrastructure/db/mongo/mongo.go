package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

const (
	collectionCustomers    = "customers"
	collectionSellers      = "sellers"
	collectionProducts     = "products"
	collectionImages       = "images"
	collectionCards        = "cards"
	collectionBankAccounts = "bank_accounts"
	collectionOrders       = "orders"
	collectionAuthEvents   = "auth_events"
	collectionCounters     = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates the unique and lookup indexes every repository relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	unique := options.Index().SetUnique(true)
	plan := map[string][]mongo.IndexModel{
		collectionCustomers: {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionSellers:   {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		collectionProducts:  {{Keys: bson.D{{Key: "seller_id", Value: 1}}}},
		collectionImages:    {{Keys: bson.D{{Key: "product_id", Value: 1}}}},
		collectionCards:     {{Keys: bson.D{{Key: "customer_id", Value: 1}}}},
		collectionBankAccounts: {
			{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		},
		collectionOrders: {
			{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "placed_at", Value: -1}}},
			{Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "placed_at", Value: -1}}},
		},
		collectionAuthEvents: {
			{Keys: bson.D{{Key: "identity", Value: 1}, {Key: "occurred_at", Value: -1}}},
		},
	}

	for name, indexes := range plan {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
