package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cymbol-superstore/marketplace-api/internal/api/handler"
	"github.com/cymbol-superstore/marketplace-api/internal/api/middleware"
	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
	"github.com/cymbol-superstore/marketplace-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. Readiness may be nil, in which
// case /health/ready is not registered.
type Deps struct {
	Auth       ports.AuthService
	Accounts   ports.AccountService
	Catalog    ports.CatalogService
	Orders     ports.OrderService
	Authorizer ports.TokenAuthorizer
	Readiness  *handlers.HealthDependenciesHandler
	Logger     zerolog.Logger
	// Docs serves the Swagger UI at /swagger/*.
	Docs bool
	// Metrics exposes Prometheus metrics at /metrics and records HTTP metrics.
	Metrics bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	if d.Metrics {
		e.Use(echoprometheus.NewMiddleware("marketplace"))
		e.GET("/metrics", echoprometheus.NewHandler())
	}
	if d.Docs {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	catalogHandler := handler.NewCatalogHandler(d.Catalog)
	orderHandler := handler.NewOrderHandler(d.Orders)

	authenticated := middleware.Auth(d.Authorizer)
	customerOnly := middleware.RequireRole(domain.RoleCustomer)
	sellerOnly := middleware.RequireRole(domain.RoleSeller)

	// --- Auth routes ---
	e.POST("/auth/token", authHandler.Token)

	// --- Customers ---
	e.POST("/customers/create", accountHandler.RegisterCustomer)
	e.GET("/customers/id/:id", accountHandler.GetCustomer)
	e.GET("/customers/email/:email", accountHandler.GetCustomerByEmail)

	customers := e.Group("/customers/me", authenticated, customerOnly)
	customers.GET("", accountHandler.MeCustomer)
	customers.POST("/cards", accountHandler.AddCard)
	customers.GET("/cards", accountHandler.ListCards)
	customers.GET("/orders", orderHandler.ListMine)

	// --- Sellers ---
	e.POST("/sellers/create", accountHandler.RegisterSeller)
	e.GET("/sellers/id/:id", accountHandler.GetSeller)
	e.GET("/sellers/email/:email", accountHandler.GetSellerByEmail)

	sellers := e.Group("/sellers/me", authenticated, sellerOnly)
	sellers.GET("", accountHandler.MeSeller)
	sellers.POST("/accounts", accountHandler.AddBankAccount)
	sellers.GET("/accounts", accountHandler.ListBankAccounts)
	sellers.GET("/products", catalogHandler.ListMyProducts)
	sellers.GET("/orders", orderHandler.ListMine)

	// --- Catalog ---
	e.GET("/products", catalogHandler.ListProducts)
	e.GET("/products/:id", catalogHandler.GetProduct)
	e.GET("/products/seller/:seller_id", catalogHandler.ListSellerProducts)
	e.GET("/images/:id", catalogHandler.GetImage)
	e.POST("/products/create", catalogHandler.CreateProduct, authenticated, sellerOnly)
	e.POST("/products/:id/images", catalogHandler.AddImage, authenticated, sellerOnly)

	// --- Orders ---
	e.POST("/orders/place", orderHandler.Place, authenticated, customerOnly)
	e.GET("/orders/:id", orderHandler.Get, authenticated)

	// --- Health probes (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if d.Readiness != nil {
		e.GET("/health/ready", d.Readiness.Readiness)
	}

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
