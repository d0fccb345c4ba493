package service

import (
	"context"
	"sort"
	"sync"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubCustomerRepo struct {
	byID    map[int64]*domain.Customer
	nextID  int64
	findErr error // if set, FindByEmail returns this error
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{byID: make(map[int64]*domain.Customer), nextID: 1}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	for _, existing := range r.byID {
		if existing.Email == c.Email {
			return nil, domain.ErrPrincipalExists
		}
	}
	clone := *c
	if clone.ID == 0 {
		clone.ID = r.nextID
		r.nextID++
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCustomerRepo) FindByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCustomerRepo) FindByEmail(_ context.Context, email string) (*domain.Customer, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, c := range r.byID {
		if c.Email == email {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

type stubSellerRepo struct {
	byID   map[int64]*domain.Seller
	nextID int64
}

func newStubSellerRepo() *stubSellerRepo {
	return &stubSellerRepo{byID: make(map[int64]*domain.Seller), nextID: 1}
}

func (r *stubSellerRepo) Create(_ context.Context, s *domain.Seller) (*domain.Seller, error) {
	for _, existing := range r.byID {
		if existing.Email == s.Email {
			return nil, domain.ErrPrincipalExists
		}
	}
	clone := *s
	if clone.ID == 0 {
		clone.ID = r.nextID
		r.nextID++
	}
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubSellerRepo) FindByID(_ context.Context, id int64) (*domain.Seller, error) {
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPrincipalNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSellerRepo) FindByEmail(_ context.Context, email string) (*domain.Seller, error) {
	for _, s := range r.byID {
		if s.Email == email {
			clone := *s
			return &clone, nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

type stubCardRepo struct {
	cards map[string]*domain.Card
}

func newStubCardRepo() *stubCardRepo {
	return &stubCardRepo{cards: make(map[string]*domain.Card)}
}

func (r *stubCardRepo) Create(_ context.Context, c *domain.Card) error {
	if _, ok := r.cards[c.Number]; ok {
		return domain.ErrCardExists
	}
	clone := *c
	r.cards[c.Number] = &clone
	return nil
}

func (r *stubCardRepo) ListByCustomer(_ context.Context, customerID int64) ([]*domain.Card, error) {
	out := []*domain.Card{}
	for _, c := range r.cards {
		if c.CustomerID == customerID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubBankAccountRepo struct {
	accounts map[string]*domain.BankAccount
}

func newStubBankAccountRepo() *stubBankAccountRepo {
	return &stubBankAccountRepo{accounts: make(map[string]*domain.BankAccount)}
}

func (r *stubBankAccountRepo) Create(_ context.Context, a *domain.BankAccount) error {
	if _, ok := r.accounts[a.Number]; ok {
		return domain.ErrBankAccountExists
	}
	clone := *a
	r.accounts[a.Number] = &clone
	return nil
}

func (r *stubBankAccountRepo) ListBySeller(_ context.Context, sellerID int64) ([]*domain.BankAccount, error) {
	out := []*domain.BankAccount{}
	for _, a := range r.accounts {
		if a.SellerID == sellerID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubProductRepo struct {
	byID       map[int64]*domain.Product
	nextID     int64
	lastFilter ports.ListProductsFilter
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{byID: make(map[int64]*domain.Product), nextID: 1}
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) error {
	p.ID = r.nextID
	r.nextID++
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) List(_ context.Context, f ports.ListProductsFilter) ([]*domain.Product, error) {
	r.lastFilter = f
	var matched []*domain.Product
	for _, p := range r.byID {
		if f.SellerID != nil && p.SellerID != *f.SellerID {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	if f.Offset >= len(matched) {
		return []*domain.Product{}, nil
	}
	end := f.Offset + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Offset:end], nil
}

type stubImageRepo struct {
	byID   map[int64]*domain.Image
	nextID int64
}

func newStubImageRepo() *stubImageRepo {
	return &stubImageRepo{byID: make(map[int64]*domain.Image), nextID: 1}
}

func (r *stubImageRepo) Create(_ context.Context, img *domain.Image) error {
	img.ID = r.nextID
	r.nextID++
	clone := *img
	r.byID[img.ID] = &clone
	return nil
}

func (r *stubImageRepo) FindByID(_ context.Context, id int64) (*domain.Image, error) {
	img, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrImageNotFound
	}
	clone := *img
	return &clone, nil
}

func (r *stubImageRepo) ListByProduct(_ context.Context, productID int64) ([]domain.Image, error) {
	out := []domain.Image{}
	for _, img := range r.byID {
		if img.ProductID == productID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubOrderRepo struct {
	mu         sync.Mutex
	byID       map[int64]*domain.Order
	nextID     int64
	lastFilter ports.ListOrdersFilter
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{byID: make(map[int64]*domain.Order), nextID: 1}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	clone := *o
	r.byID[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	out := []*domain.Order{}
	for _, o := range r.byID {
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		if f.SellerID != nil && o.SellerID != *f.SellerID {
			continue
		}
		clone := *o
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubOrderRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type idemKey struct {
	customerID int64
	key        string
}

// stubIdempotencyStore mimics SET NX: zero marks a pending reservation.
type stubIdempotencyStore struct {
	mu   sync.Mutex
	seen map[idemKey]int64
}

func newStubIdempotencyStore() *stubIdempotencyStore {
	return &stubIdempotencyStore{seen: make(map[idemKey]int64)}
}

func (s *stubIdempotencyStore) Reserve(_ context.Context, customerID int64, key string) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{customerID, key}
	if id, ok := s.seen[k]; ok {
		return false, id, nil
	}
	s.seen[k] = 0
	return true, 0, nil
}

func (s *stubIdempotencyStore) Complete(_ context.Context, customerID int64, key string, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[idemKey{customerID, key}] = orderID
	return nil
}

func (s *stubIdempotencyStore) Release(_ context.Context, customerID int64, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := idemKey{customerID, key}
	if s.seen[k] == 0 {
		delete(s.seen, k)
	}
	return nil
}

// recordingSink collects audit events synchronously.
type recordingSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (s *recordingSink) Record(e domain.AuthEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func (s *recordingSink) last() domain.AuthEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[len(s.events)-1]
}

// plainHasher is a fast, deterministic stand-in for bcrypt in service tests.
type plainHasher struct{}

func (plainHasher) Hash(secret string) (string, error) { return "H(" + secret + ")", nil }

func (plainHasher) Verify(secret, hashed string) bool { return hashed == "H("+secret+")" }

// countingHasher records how many verifications ran.
type countingHasher struct {
	plainHasher
	mu       sync.Mutex
	verified int
}

func (h *countingHasher) Verify(secret, hashed string) bool {
	h.mu.Lock()
	h.verified++
	h.mu.Unlock()
	return h.plainHasher.Verify(secret, hashed)
}

func (h *countingHasher) calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.verified
}
