package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
	"github.com/cymbol-superstore/marketplace-api/internal/core/security"
)

// AccountService manages customer and seller accounts, cards and bank accounts.
type AccountService struct {
	customers ports.CustomerRepository
	sellers   ports.SellerRepository
	cards     ports.CardRepository
	accounts  ports.BankAccountRepository
	hasher    ports.PasswordHasher
	logger    zerolog.Logger
}

func NewAccountService(
	customers ports.CustomerRepository,
	sellers ports.SellerRepository,
	cards ports.CardRepository,
	accounts ports.BankAccountRepository,
	hasher ports.PasswordHasher,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		customers: customers,
		sellers:   sellers,
		cards:     cards,
		accounts:  accounts,
		hasher:    hasher,
		logger:    logger,
	}
}

// RegisterCustomer hashes the password and stores a new customer.
// A taken email yields domain.ErrPrincipalExists.
func (s *AccountService) RegisterCustomer(ctx context.Context, in ports.RegisterInput) (*domain.Customer, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.customers.Create(ctx, &domain.Customer{
		Name:         strings.TrimSpace(in.Name),
		Email:        domain.NormalizeEmail(in.Email),
		Age:          in.Age,
		JoinedOn:     time.Now().UTC(),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("customer_id", created.ID).Msg("customer registered")
	return created, nil
}

// RegisterSeller hashes the password and stores a new seller.
func (s *AccountService) RegisterSeller(ctx context.Context, in ports.RegisterInput) (*domain.Seller, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.sellers.Create(ctx, &domain.Seller{
		Name:         strings.TrimSpace(in.Name),
		Email:        domain.NormalizeEmail(in.Email),
		Age:          in.Age,
		JoinedOn:     time.Now().UTC(),
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("seller_id", created.ID).Msg("seller registered")
	return created, nil
}

func (s *AccountService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

func (s *AccountService) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return s.customers.FindByEmail(ctx, domain.NormalizeEmail(email))
}

func (s *AccountService) GetSeller(ctx context.Context, id int64) (*domain.Seller, error) {
	return s.sellers.FindByID(ctx, id)
}

func (s *AccountService) GetSellerByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	return s.sellers.FindByEmail(ctx, domain.NormalizeEmail(email))
}

// CurrentCustomer returns the customer behind a customer identity.
func (s *AccountService) CurrentCustomer(ctx context.Context, id domain.Identity) (*domain.Customer, error) {
	if err := security.RequireRole(id, domain.RoleCustomer); err != nil {
		return nil, err
	}
	return s.customers.FindByID(ctx, id.ID)
}

// CurrentSeller returns the seller behind a seller identity.
func (s *AccountService) CurrentSeller(ctx context.Context, id domain.Identity) (*domain.Seller, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}
	return s.sellers.FindByID(ctx, id.ID)
}

// AddCard attaches a payment card to the calling customer.
func (s *AccountService) AddCard(ctx context.Context, id domain.Identity, in ports.CardInput) (*domain.Card, error) {
	if err := security.RequireRole(id, domain.RoleCustomer); err != nil {
		return nil, err
	}

	card := &domain.Card{
		Number:     in.Number,
		HolderName: strings.TrimSpace(in.HolderName),
		ExpMonth:   in.ExpMonth,
		ExpYear:    in.ExpYear,
		CustomerID: id.ID,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		s.logger.Error().Err(err).Int64("customer_id", id.ID).Msg("failed to add card")
		return nil, err
	}
	return card, nil
}

func (s *AccountService) ListCards(ctx context.Context, id domain.Identity) ([]*domain.Card, error) {
	if err := security.RequireRole(id, domain.RoleCustomer); err != nil {
		return nil, err
	}
	return s.cards.ListByCustomer(ctx, id.ID)
}

// AddBankAccount attaches a payout account to the calling seller.
func (s *AccountService) AddBankAccount(ctx context.Context, id domain.Identity, in ports.BankAccountInput) (*domain.BankAccount, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}

	acc := &domain.BankAccount{
		Number:   in.Number,
		Holder:   strings.TrimSpace(in.Holder),
		BankName: strings.TrimSpace(in.BankName),
		IFSCCode: strings.ToUpper(in.IFSCCode),
		SellerID: id.ID,
	}
	if err := s.accounts.Create(ctx, acc); err != nil {
		s.logger.Error().Err(err).Int64("seller_id", id.ID).Msg("failed to add bank account")
		return nil, err
	}
	return acc, nil
}

func (s *AccountService) ListBankAccounts(ctx context.Context, id domain.Identity) ([]*domain.BankAccount, error) {
	if err := security.RequireRole(id, domain.RoleSeller); err != nil {
		return nil, err
	}
	return s.accounts.ListBySeller(ctx, id.ID)
}
