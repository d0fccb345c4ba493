package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultIdempotencyTTL bounds how long an Idempotency-Key is remembered.
const DefaultIdempotencyTTL = 24 * time.Hour

const (
	pendingMarker = "pending"
	// A reservation whose request died is freed after this long.
	pendingTTL = time.Minute
)

// releaseScript deletes the key only while it still holds the pending marker,
// so a completed order id is never dropped.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// OrderIdempotencyStore implements ports.OrderIdempotencyStore on Redis.
// Key format: idem:order:<customer_id>:<key>. The value is "pending" while the
// order is being placed, then the order id.
type OrderIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOrderIdempotencyStore wraps client. ttl <= 0 uses DefaultIdempotencyTTL.
func NewOrderIdempotencyStore(client *redis.Client, ttl time.Duration) *OrderIdempotencyStore {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &OrderIdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SET NX. Only one caller per key gets reserved=true.
func (s *OrderIdempotencyStore) Reserve(ctx context.Context, customerID int64, key string) (bool, int64, error) {
	k := s.key(customerID, key)
	err := s.client.SetArgs(ctx, k, pendingMarker, redis.SetArgs{Mode: "NX", TTL: pendingTTL}).Err()
	if err == nil {
		return true, 0, nil
	}
	if !errors.Is(err, redis.Nil) {
		return false, 0, fmt.Errorf("idempotency reserve: %w", err)
	}

	val, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// The holder released it between our SET and GET; report it as busy
		// and let the client retry.
		return false, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("idempotency reserve: %w", err)
	}
	orderID, err := parseOrderID(val)
	if err != nil {
		return false, 0, fmt.Errorf("idempotency reserve: %w", err)
	}
	return false, orderID, nil
}

// Complete replaces the pending marker with orderID for the full TTL.
func (s *OrderIdempotencyStore) Complete(ctx context.Context, customerID int64, key string, orderID int64) error {
	if err := s.client.Set(ctx, s.key(customerID, key), orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release frees a reservation that never produced an order.
func (s *OrderIdempotencyStore) Release(ctx context.Context, customerID int64, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.key(customerID, key)}, pendingMarker).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func (s *OrderIdempotencyStore) key(customerID int64, key string) string {
	return fmt.Sprintf("idem:order:%d:%s", customerID, key)
}

// parseOrderID returns zero for the pending marker.
func parseOrderID(val string) (int64, error) {
	if val == pendingMarker {
		return 0, nil
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt value %q: %w", val, err)
	}
	return id, nil
}
