package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/api/metrics"
	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

// AccountHandler serves customer and seller accounts and their wallets.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// RegisterCustomer handles POST /customers/create.
//
// @Summary      Register a customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Customer details"
// @Success      201   {object}  domain.Customer
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /customers/create [post]
func (h *AccountHandler) RegisterCustomer(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	customer, err := h.service.RegisterCustomer(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleCustomer)).Inc()
	return c.JSON(http.StatusCreated, customer)
}

// RegisterSeller handles POST /sellers/create.
//
// @Summary      Register a seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Seller details"
// @Success      201   {object}  domain.Seller
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /sellers/create [post]
func (h *AccountHandler) RegisterSeller(c echo.Context) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	seller, err := h.service.RegisterSeller(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}
	metrics.RegistrationsTotal.WithLabelValues(string(domain.RoleSeller)).Inc()
	return c.JSON(http.StatusCreated, seller)
}

// GetCustomer handles GET /customers/id/:id.
//
// @Summary      Get a customer by id
// @Tags         customers
// @Produce      json
// @Param        id   path      int  true  "Customer id"
// @Success      200  {object}  domain.Customer
// @Failure      404  {object}  errorResponse
// @Router       /customers/id/{id} [get]
func (h *AccountHandler) GetCustomer(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.service.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// GetCustomerByEmail handles GET /customers/email/:email.
//
// @Summary      Get a customer by email
// @Tags         customers
// @Produce      json
// @Param        email  path      string  true  "Customer email"
// @Success      200    {object}  domain.Customer
// @Failure      404    {object}  errorResponse
// @Router       /customers/email/{email} [get]
func (h *AccountHandler) GetCustomerByEmail(c echo.Context) error {
	customer, err := h.service.GetCustomerByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// GetSeller handles GET /sellers/id/:id.
//
// @Summary      Get a seller by id
// @Tags         sellers
// @Produce      json
// @Param        id   path      int  true  "Seller id"
// @Success      200  {object}  domain.Seller
// @Failure      404  {object}  errorResponse
// @Router       /sellers/id/{id} [get]
func (h *AccountHandler) GetSeller(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	seller, err := h.service.GetSeller(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seller)
}

// GetSellerByEmail handles GET /sellers/email/:email.
//
// @Summary      Get a seller by email
// @Tags         sellers
// @Produce      json
// @Param        email  path      string  true  "Seller email"
// @Success      200    {object}  domain.Seller
// @Failure      404    {object}  errorResponse
// @Router       /sellers/email/{email} [get]
func (h *AccountHandler) GetSellerByEmail(c echo.Context) error {
	seller, err := h.service.GetSellerByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seller)
}

// MeCustomer handles GET /customers/me.
//
// @Summary      Current customer
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Customer
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /customers/me [get]
func (h *AccountHandler) MeCustomer(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	customer, err := h.service.CurrentCustomer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, customer)
}

// MeSeller handles GET /sellers/me.
//
// @Summary      Current seller
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Seller
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /sellers/me [get]
func (h *AccountHandler) MeSeller(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	seller, err := h.service.CurrentSeller(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, seller)
}

// AddCard handles POST /customers/me/cards.
//
// @Summary      Add a payment card
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      cardRequest  true  "Card details"
// @Success      201   {object}  domain.Card
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /customers/me/cards [post]
func (h *AccountHandler) AddCard(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req cardRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	card, err := h.service.AddCard(c.Request().Context(), id, toCardInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, card)
}

// ListCards handles GET /customers/me/cards.
//
// @Summary      List my payment cards
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Card
// @Failure      403  {object}  errorResponse
// @Router       /customers/me/cards [get]
func (h *AccountHandler) ListCards(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	cards, err := h.service.ListCards(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cards)
}

// AddBankAccount handles POST /sellers/me/accounts.
//
// @Summary      Add a payout bank account
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bankAccountRequest  true  "Account details"
// @Success      201   {object}  domain.BankAccount
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /sellers/me/accounts [post]
func (h *AccountHandler) AddBankAccount(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req bankAccountRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	acc, err := h.service.AddBankAccount(c.Request().Context(), id, toBankAccountInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, acc)
}

// ListBankAccounts handles GET /sellers/me/accounts.
//
// @Summary      List my bank accounts
// @Tags         sellers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.BankAccount
// @Failure      403  {object}  errorResponse
// @Router       /sellers/me/accounts [get]
func (h *AccountHandler) ListBankAccounts(c echo.Context) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	accounts, err := h.service.ListBankAccounts(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}
