package ports

import (
	"context"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// ListProductsFilter carries paging and the optional seller scope for product listings.
type ListProductsFilter struct {
	SellerID *int64 // nil = all sellers
	Offset   int
	Limit    int
}

// ProductRepository persists products. IDs are assigned by the repository.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, error)
}

// ImageRepository persists product images.
type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) error
	FindByID(ctx context.Context, id int64) (*domain.Image, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Image, error)
}

// CardRepository persists customer payment cards.
type CardRepository interface {
	Create(ctx context.Context, card *domain.Card) error
	ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Card, error)
}

// BankAccountRepository persists seller payout accounts.
type BankAccountRepository interface {
	Create(ctx context.Context, acc *domain.BankAccount) error
	ListBySeller(ctx context.Context, sellerID int64) ([]*domain.BankAccount, error)
}
