package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// CardRepository stores customer cards keyed by card number.
type CardRepository struct {
	col *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	return &CardRepository{col: db.Collection(collectionCards)}
}

func (r *CardRepository) Create(ctx context.Context, c *domain.Card) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrCardExists
		}
		return fmt.Errorf("insert card: %w", err)
	}
	return nil
}

func (r *CardRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	cards := []*domain.Card{}
	if err := cur.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode cards: %w", err)
	}
	return cards, nil
}

// BankAccountRepository stores seller payout accounts keyed by account number.
type BankAccountRepository struct {
	col *mongo.Collection
}

func NewBankAccountRepository(db *mongo.Database) *BankAccountRepository {
	return &BankAccountRepository{col: db.Collection(collectionBankAccounts)}
}

func (r *BankAccountRepository) Create(ctx context.Context, a *domain.BankAccount) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrBankAccountExists
		}
		return fmt.Errorf("insert bank account: %w", err)
	}
	return nil
}

func (r *BankAccountRepository) ListBySeller(ctx context.Context, sellerID int64) ([]*domain.BankAccount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"seller_id": sellerID})
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	accounts := []*domain.BankAccount{}
	if err := cur.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("decode bank accounts: %w", err)
	}
	return accounts, nil
}
