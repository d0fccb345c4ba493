package ports

import (
	"context"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
)

// RegisterInput carries the fields needed to open a customer or seller account.
type RegisterInput struct {
	Name     string
	Email    string
	Age      *int
	Password string
}

// CardInput holds a payment card to attach to the calling customer.
type CardInput struct {
	Number     string
	HolderName string
	ExpMonth   int
	ExpYear    int
}

// BankAccountInput holds a payout account to attach to the calling seller.
type BankAccountInput struct {
	Number   string
	Holder   string
	BankName string
	IFSCCode string
}

// AccountService manages customer and seller accounts and their payment instruments.
type AccountService interface {
	RegisterCustomer(ctx context.Context, in RegisterInput) (*domain.Customer, error)
	RegisterSeller(ctx context.Context, in RegisterInput) (*domain.Seller, error)

	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)
	GetSeller(ctx context.Context, id int64) (*domain.Seller, error)
	GetSellerByEmail(ctx context.Context, email string) (*domain.Seller, error)

	CurrentCustomer(ctx context.Context, id domain.Identity) (*domain.Customer, error)
	CurrentSeller(ctx context.Context, id domain.Identity) (*domain.Seller, error)

	AddCard(ctx context.Context, id domain.Identity, in CardInput) (*domain.Card, error)
	ListCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error)
	AddBankAccount(ctx context.Context, id domain.Identity, in BankAccountInput) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, id domain.Identity) ([]*domain.BankAccount, error)
}
