// @title                       Cymbol Superstore Marketplace API
// @version                     1.0
// @description                 Customers, sellers, catalog and orders behind bearer-token authentication.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/cymbol-superstore/marketplace-api/docs"
	"github.com/cymbol-superstore/marketplace-api/internal/api"
	"github.com/cymbol-superstore/marketplace-api/internal/api/metrics"
	"github.com/cymbol-superstore/marketplace-api/internal/core/security"
	"github.com/cymbol-superstore/marketplace-api/internal/core/service"
	"github.com/cymbol-superstore/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/cymbol-superstore/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/cymbol-superstore/marketplace-api/internal/infrastructure/db/redis"
	"github.com/cymbol-superstore/marketplace-api/internal/infrastructure/http/handlers"
	"github.com/cymbol-superstore/marketplace-api/internal/infrastructure/queue"
	"github.com/cymbol-superstore/marketplace-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "marketplace-api",
		Env:     cfg.Env,
	})
	if cfg.UsesInsecureSecret() {
		log.Warn().Msg("SECRET_KEY not set, signing tokens with the development placeholder")
	}

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect mongo")
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}

	customers := mongodb.NewCustomerRepository(db)
	sellers := mongodb.NewSellerRepository(db)
	products := mongodb.NewProductRepository(db)
	images := mongodb.NewImageRepository(db)
	cards := mongodb.NewCardRepository(db)
	bankAccounts := mongodb.NewBankAccountRepository(db)
	orders := mongodb.NewOrderRepository(db)
	idempotency := redisdb.NewOrderIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)

	// --- Security ---
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	codec, err := security.NewJWTCodec(cfg.Auth.SecretKey, cfg.Auth.Algorithm)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token codec")
	}
	guard := security.NewGuard(codec, logger.For("guard"), security.WithRejectHook(func(reason string) {
		metrics.TokenRejectionsTotal.WithLabelValues(reason).Inc()
	}))

	// --- Audit workers ---
	// Workers outlive the request context so queued events drain on shutdown.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, mongodb.NewAuthEventRepository(db), logger.For("audit"))
	audit.Start(auditCtx)

	// --- Services ---
	authService := service.NewAuthService(customers, sellers, hasher, codec, cfg.Auth.AccessTokenTTL(), audit, logger.For("auth"))
	accountService := service.NewAccountService(customers, sellers, cards, bankAccounts, hasher, logger.For("accounts"))
	catalogService := service.NewCatalogService(products, images, logger.For("catalog"))
	orderService := service.NewOrderService(orders, products, idempotency, logger.For("orders"))

	e := api.NewRouter(api.Deps{
		Auth:       authService,
		Accounts:   accountService,
		Catalog:    catalogService,
		Orders:     orderService,
		Authorizer: guard,
		Readiness:  handlers.NewHealthDependenciesHandler(db, rdb),
		Logger:     logger.For("http"),
		Docs:       !cfg.IsProduction(),
		Metrics:    true,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("marketplace-api started")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	stopAudit()
	audit.Wait()
	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("mongo disconnect failed")
	}

	log.Info().Msg("marketplace-api stopped cleanly")
}
