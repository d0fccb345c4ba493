package ports

import (
	"context"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// CustomerRepository persists customer accounts.
// FindBy* return domain.ErrPrincipalNotFound when no record matches.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	FindByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

// SellerRepository persists seller accounts.
// FindBy* return domain.ErrPrincipalNotFound when no record matches.
type SellerRepository interface {
	Create(ctx context.Context, seller *domain.Seller) (*domain.Seller, error)
	FindByID(ctx context.Context, id int64) (*domain.Seller, error)
	FindByEmail(ctx context.Context, email string) (*domain.Seller, error)
}
