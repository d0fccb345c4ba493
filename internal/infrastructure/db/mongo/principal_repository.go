package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// mongoPrincipal is the stored shape shared by customers and sellers.
type mongoPrincipal struct {
	ID           int64     `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	Age          *int      `bson:"age,omitempty"`
	PasswordHash string    `bson:"password_hash"`
	JoinedOn     time.Time `bson:"joined_on"`
}

type principalStore struct {
	col *mongo.Collection
	seq sequence
}

func newPrincipalStore(db *mongo.Database, collection string) principalStore {
	return principalStore{col: db.Collection(collection), seq: newSequence(db, collection)}
}

func (s principalStore) insert(ctx context.Context, doc mongoPrincipal) (mongoPrincipal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := s.seq.next(ctx)
	if err != nil {
		return mongoPrincipal{}, err
	}
	doc.ID = id

	if _, err := s.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return mongoPrincipal{}, domain.ErrPrincipalExists
		}
		return mongoPrincipal{}, fmt.Errorf("insert %s: %w", s.col.Name(), err)
	}
	return doc, nil
}

func (s principalStore) findOne(ctx context.Context, filter bson.M) (mongoPrincipal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoPrincipal
	if err := s.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return mongoPrincipal{}, domain.ErrPrincipalNotFound
		}
		return mongoPrincipal{}, fmt.Errorf("find %s: %w", s.col.Name(), err)
	}
	return doc, nil
}

// CustomerRepository implements ports.CustomerRepository using MongoDB.
type CustomerRepository struct {
	store principalStore
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{store: newPrincipalStore(db, collectionCustomers)}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	doc, err := r.store.insert(ctx, mongoPrincipal{
		Name:         c.Name,
		Email:        c.Email,
		Age:          c.Age,
		PasswordHash: c.PasswordHash,
		JoinedOn:     c.JoinedOn,
	})
	if err != nil {
		return nil, err
	}
	return toCustomer(doc), nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	doc, err := r.store.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toCustomer(doc), nil
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	doc, err := r.store.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return toCustomer(doc), nil
}

// SellerRepository implements ports.SellerRepository using MongoDB.
type SellerRepository struct {
	store principalStore
}

func NewSellerRepository(db *mongo.Database) *SellerRepository {
	return &SellerRepository{store: newPrincipalStore(db, collectionSellers)}
}

func (r *SellerRepository) Create(ctx context.Context, s *domain.Seller) (*domain.Seller, error) {
	doc, err := r.store.insert(ctx, mongoPrincipal{
		Name:         s.Name,
		Email:        s.Email,
		Age:          s.Age,
		PasswordHash: s.PasswordHash,
		JoinedOn:     s.JoinedOn,
	})
	if err != nil {
		return nil, err
	}
	return toSeller(doc), nil
}

func (r *SellerRepository) FindByID(ctx context.Context, id int64) (*domain.Seller, error) {
	doc, err := r.store.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return toSeller(doc), nil
}

func (r *SellerRepository) FindByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	doc, err := r.store.findOne(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	return toSeller(doc), nil
}

func toCustomer(d mongoPrincipal) *domain.Customer {
	return &domain.Customer{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Age:          d.Age,
		JoinedOn:     d.JoinedOn.UTC(),
		PasswordHash: d.PasswordHash,
	}
}

func toSeller(d mongoPrincipal) *domain.Seller {
	return &domain.Seller{
		ID:           d.ID,
		Name:         d.Name,
		Email:        d.Email,
		Age:          d.Age,
		JoinedOn:     d.JoinedOn.UTC(),
		PasswordHash: d.PasswordHash,
	}
}
