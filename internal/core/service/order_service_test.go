package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

func newTestOrderService() (*OrderService, *stubOrderRepo, *stubProductRepo) {
	orders := newStubOrderRepo()
	products := newStubProductRepo()
	products.byID[1] = &domain.Product{ID: 1, Name: "Desk lamp", Price: 19.5, SellerID: 7}
	svc := NewOrderService(orders, products, newStubIdempotencyStore(), zerolog.Nop())
	svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return svc, orders, products
}

func TestOrderService_PlaceOrder(t *testing.T) {
	svc, orders, _ := newTestOrderService()

	res, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 1, SellerID: 7, IsCOD: true})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	o := res.Order
	if res.AlreadyExisted {
		t.Fatalf("first placement must not be a replay")
	}
	if o.CustomerID != 1 || o.SellerID != 7 || o.Price != 19.5 || !o.IsCOD || o.Status != domain.OrderStatusPlaced {
		t.Fatalf("unexpected order: %+v", o)
	}
	if len(orders.byID) != 1 {
		t.Fatalf("expected one stored order")
	}
}

func TestOrderService_PlaceOrder_SellerIdentityForbidden(t *testing.T) {
	svc, orders, _ := newTestOrderService()

	_, err := svc.PlaceOrder(context.Background(), sellerID, ports.PlaceOrderInput{ProductID: 1, SellerID: 7})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(orders.byID) != 0 {
		t.Fatalf("no order may be stored on a forbidden call")
	}
}

func TestOrderService_PlaceOrder_Validation(t *testing.T) {
	svc, _, _ := newTestOrderService()

	if _, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 42, SellerID: 7}); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if _, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 1, SellerID: 8}); !errors.Is(err, domain.ErrNotAcceptable) {
		t.Fatalf("expected ErrNotAcceptable for seller mismatch, got %v", err)
	}
}

func TestOrderService_PlaceOrder_Idempotent(t *testing.T) {
	svc, orders, _ := newTestOrderService()
	in := ports.PlaceOrderInput{ProductID: 1, SellerID: 7, IdempotencyKey: "key-1"}

	first, err := svc.PlaceOrder(context.Background(), customerID, in)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), customerID, in)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if !second.AlreadyExisted || second.Order.ID != first.Order.ID {
		t.Fatalf("expected replay of order %d, got %+v", first.Order.ID, second)
	}
	if len(orders.byID) != 1 {
		t.Fatalf("replay must not create another order")
	}

	// the same key from another customer is independent
	other := domain.Identity{ID: 2, Role: domain.RoleCustomer}
	third, err := svc.PlaceOrder(context.Background(), other, in)
	if err != nil {
		t.Fatalf("third: %v", err)
	}
	if third.AlreadyExisted {
		t.Fatalf("keys must be scoped per customer")
	}
}

func TestOrderService_PlaceOrder_ConcurrentSameKey(t *testing.T) {
	svc, orders, _ := newTestOrderService()
	in := ports.PlaceOrderInput{ProductID: 1, SellerID: 7, IdempotencyKey: "same-key"}

	const n = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]*ports.PlaceOrderResult, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = svc.PlaceOrder(context.Background(), customerID, in)
		}(i)
	}
	close(start)
	wg.Wait()

	if got := orders.count(); got != 1 {
		t.Fatalf("same Idempotency-Key produced %d orders", got)
	}

	created := 0
	var createdID int64
	for i := 0; i < n; i++ {
		switch {
		case errs[i] != nil:
			if !errors.Is(errs[i], domain.ErrOrderInProgress) {
				t.Fatalf("unexpected error: %v", errs[i])
			}
		case !results[i].AlreadyExisted:
			created++
			createdID = results[i].Order.ID
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one created result, got %d", created)
	}
	for i := 0; i < n; i++ {
		if errs[i] == nil && results[i].AlreadyExisted && results[i].Order.ID != createdID {
			t.Fatalf("replay returned order %d, want %d", results[i].Order.ID, createdID)
		}
	}
}

func TestOrderService_PlaceOrder_KeyInProgress(t *testing.T) {
	idem := newStubIdempotencyStore()
	orders := newStubOrderRepo()
	products := newStubProductRepo()
	products.byID[1] = &domain.Product{ID: 1, SellerID: 7}
	svc := NewOrderService(orders, products, idem, zerolog.Nop())

	if ok, _, _ := idem.Reserve(context.Background(), customerID.ID, "busy"); !ok {
		t.Fatalf("setup: reserve failed")
	}

	_, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 1, SellerID: 7, IdempotencyKey: "busy"})
	if !errors.Is(err, domain.ErrOrderInProgress) || !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrOrderInProgress, got %v", err)
	}
	if orders.count() != 0 {
		t.Fatalf("no order may be placed while the key is reserved")
	}
}

func TestOrderService_PlaceOrder_FailedPlacementReleasesKey(t *testing.T) {
	svc, orders, _ := newTestOrderService()

	_, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 42, SellerID: 7, IdempotencyKey: "retry"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	res, err := svc.PlaceOrder(context.Background(), customerID, ports.PlaceOrderInput{ProductID: 1, SellerID: 7, IdempotencyKey: "retry"})
	if err != nil {
		t.Fatalf("retry with the same key: %v", err)
	}
	if res.AlreadyExisted || orders.count() != 1 {
		t.Fatalf("expected a fresh order after the failed attempt, got %+v", res)
	}
}

func TestOrderService_GetOrder_Visibility(t *testing.T) {
	svc, orders, _ := newTestOrderService()
	orders.byID[5] = &domain.Order{ID: 5, CustomerID: 1, SellerID: 7}

	for _, id := range []domain.Identity{customerID, sellerID} {
		if _, err := svc.GetOrder(context.Background(), id, 5); err != nil {
			t.Fatalf("%s should see the order: %v", id.Role, err)
		}
	}

	strangers := []domain.Identity{
		{ID: 2, Role: domain.RoleCustomer},
		{ID: 8, Role: domain.RoleSeller},
		{ID: 7, Role: domain.RoleCustomer}, // same id, wrong role
	}
	for _, id := range strangers {
		if _, err := svc.GetOrder(context.Background(), id, 5); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%+v: expected ErrForbidden, got %v", id, err)
		}
	}

	if _, err := svc.GetOrder(context.Background(), customerID, 99); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderService_ListMyOrders_ScopesByRole(t *testing.T) {
	svc, orders, _ := newTestOrderService()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.ListMyOrders(context.Background(), customerID, ports.OrderQuery{From: from}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if f := orders.lastFilter; f.CustomerID == nil || *f.CustomerID != 1 || f.SellerID != nil || !f.From.Equal(from) {
		t.Fatalf("unexpected customer filter: %+v", f)
	}

	if _, err := svc.ListMyOrders(context.Background(), sellerID, ports.OrderQuery{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if f := orders.lastFilter; f.SellerID == nil || *f.SellerID != 7 || f.CustomerID != nil {
		t.Fatalf("unexpected seller filter: %+v", f)
	}
}
