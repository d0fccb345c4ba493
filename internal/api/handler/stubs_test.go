package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/api/middleware"
	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// --- Auth ---

type stubAuthService struct {
	gotCreds domain.Credentials
	token    domain.AccessToken
	err      error
}

func (s *stubAuthService) Authenticate(_ context.Context, creds domain.Credentials) (domain.Principal, error) {
	s.gotCreds = creds
	return domain.Principal{}, s.err
}

func (s *stubAuthService) IssueLoginToken(_ context.Context, creds domain.Credentials) (domain.AccessToken, error) {
	s.gotCreds = creds
	return s.token, s.err
}

// --- Accounts ---

type stubAccountService struct {
	gotRegister ports.RegisterInput
	gotCard     ports.CardInput
	gotIdentity domain.Identity
	customer    *domain.Customer
	seller      *domain.Seller
	err         error
}

func (s *stubAccountService) RegisterCustomer(_ context.Context, in ports.RegisterInput) (*domain.Customer, error) {
	s.gotRegister = in
	return s.customer, s.err
}

func (s *stubAccountService) RegisterSeller(_ context.Context, in ports.RegisterInput) (*domain.Seller, error) {
	s.gotRegister = in
	return s.seller, s.err
}

func (s *stubAccountService) GetCustomer(context.Context, int64) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubAccountService) GetCustomerByEmail(context.Context, string) (*domain.Customer, error) {
	return s.customer, s.err
}

func (s *stubAccountService) GetSeller(context.Context, int64) (*domain.Seller, error) {
	return s.seller, s.err
}

func (s *stubAccountService) GetSellerByEmail(context.Context, string) (*domain.Seller, error) {
	return s.seller, s.err
}

func (s *stubAccountService) CurrentCustomer(_ context.Context, id domain.Identity) (*domain.Customer, error) {
	s.gotIdentity = id
	return s.customer, s.err
}

func (s *stubAccountService) CurrentSeller(_ context.Context, id domain.Identity) (*domain.Seller, error) {
	s.gotIdentity = id
	return s.seller, s.err
}

func (s *stubAccountService) AddCard(_ context.Context, id domain.Identity, in ports.CardInput) (*domain.Card, error) {
	s.gotIdentity = id
	s.gotCard = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Card{Number: in.Number, HolderName: in.HolderName, ExpMonth: in.ExpMonth, ExpYear: in.ExpYear}, nil
}

func (s *stubAccountService) ListCards(context.Context, domain.Identity) ([]*domain.Card, error) {
	return nil, s.err
}

func (s *stubAccountService) AddBankAccount(_ context.Context, id domain.Identity, in ports.BankAccountInput) (*domain.BankAccount, error) {
	s.gotIdentity = id
	return &domain.BankAccount{Number: in.Number}, s.err
}

func (s *stubAccountService) ListBankAccounts(context.Context, domain.Identity) ([]*domain.BankAccount, error) {
	return nil, s.err
}

// --- Catalog ---

type stubCatalogService struct {
	gotPage      ports.Page
	gotProductID int64
	product      *domain.Product
	err          error
}

func (s *stubCatalogService) CreateProduct(_ context.Context, id domain.Identity, in ports.ProductInput) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Product{ID: 1, Name: in.Name, Price: in.Price, SellerID: id.ID}, nil
}

func (s *stubCatalogService) AddImage(_ context.Context, _ domain.Identity, productID int64, in ports.ImageInput) (*domain.Image, error) {
	s.gotProductID = productID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Image{ID: 1, URL: in.URL, ProductID: productID}, nil
}

func (s *stubCatalogService) GetProduct(_ context.Context, productID int64) (*domain.Product, error) {
	s.gotProductID = productID
	return s.product, s.err
}

func (s *stubCatalogService) GetImage(context.Context, int64) (*domain.Image, error) {
	return nil, s.err
}

func (s *stubCatalogService) ListProducts(_ context.Context, page ports.Page) ([]*domain.Product, error) {
	s.gotPage = page
	return nil, s.err
}

func (s *stubCatalogService) ListSellerProducts(_ context.Context, _ int64, page ports.Page) ([]*domain.Product, error) {
	s.gotPage = page
	return nil, s.err
}

func (s *stubCatalogService) ListMyProducts(_ context.Context, _ domain.Identity, page ports.Page) ([]*domain.Product, error) {
	s.gotPage = page
	return nil, s.err
}

// --- Orders ---

type stubOrderService struct {
	gotPlace ports.PlaceOrderInput
	gotQuery ports.OrderQuery
	result   *ports.PlaceOrderResult
	called   bool
	err      error
}

func (s *stubOrderService) PlaceOrder(_ context.Context, _ domain.Identity, in ports.PlaceOrderInput) (*ports.PlaceOrderResult, error) {
	s.called = true
	s.gotPlace = in
	return s.result, s.err
}

func (s *stubOrderService) GetOrder(context.Context, domain.Identity, int64) (*domain.Order, error) {
	s.called = true
	return &domain.Order{ID: 1}, s.err
}

func (s *stubOrderService) ListMyOrders(_ context.Context, _ domain.Identity, q ports.OrderQuery) ([]*domain.Order, error) {
	s.called = true
	s.gotQuery = q
	return []*domain.Order{}, s.err
}

// newContext builds an echo context with the package validator installed.
func newContext(method, target, contentType, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, id domain.Identity) echo.Context {
	middleware.SetIdentity(c, id)
	return c
}

var (
	customer7 = domain.Identity{ID: 7, Username: "c@x.com", Role: domain.RoleCustomer}
	seller7   = domain.Identity{ID: 7, Username: "s@x.com", Role: domain.RoleSeller}
)
