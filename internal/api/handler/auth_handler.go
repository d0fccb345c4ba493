package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/api/metrics"
	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token authenticates a customer, or a seller when ?seller=true, and returns
// a bearer access token. The username is normalized the same way registration
// stores emails, so "A@B.com " logs in the account registered as "a@b.com".
//
// @Summary      Issue an access token
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        seller  query     bool          false  "Log in as a seller"
// @Param        body    body      tokenRequest  true   "Login credentials (username is the email, matched case-insensitively)"
// @Success      200     {object}  tokenResponse
// @Failure      400     {object}  errorResponse
// @Failure      401     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	role, err := roleParam(c)
	if err != nil {
		return err
	}

	var req tokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.authService.IssueLoginToken(c.Request().Context(), domain.Credentials{
		Identity: domain.NormalizeEmail(req.Username),
		Secret:   req.Password,
		Role:     role,
	})
	metrics.LoginAttemptsTotal.WithLabelValues(string(role), loginResult(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token.Token,
		TokenType:   token.TokenType,
	})
}

// roleParam reads the optional seller query flag.
func roleParam(c echo.Context) (domain.Role, error) {
	raw := c.QueryParam("seller")
	if raw == "" {
		return domain.RoleCustomer, nil
	}
	seller, err := strconv.ParseBool(raw)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "seller must be a boolean")
	}
	return domain.RoleFromSellerFlag(seller), nil
}

func loginResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "rejected"
	default:
		return "error"
	}
}
