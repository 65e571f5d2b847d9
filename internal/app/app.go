package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/PrintfAman/nexo/config"
	httpdelivery "github.com/PrintfAman/nexo/internal/delivery/http"
	"github.com/PrintfAman/nexo/internal/messaging"
	"github.com/PrintfAman/nexo/internal/messaging/kafka"
	"github.com/PrintfAman/nexo/internal/pricing"
	"github.com/PrintfAman/nexo/internal/repository"
	"github.com/PrintfAman/nexo/internal/repository/postgres"
	redisrepo "github.com/PrintfAman/nexo/internal/repository/redis"
	"github.com/PrintfAman/nexo/internal/service"
)

type services struct {
	catalog *service.CatalogService
	cart    *service.CartService
	orders  *service.OrderService
}

// App owns every long-lived resource of the API process.
type App struct {
	cfg         config.Config
	db          *sql.DB
	redis       *redis.Client
	producer    *kafka.Publisher
	publisher   messaging.Publisher
	idempotency repository.IdempotencyStore
	service     services
	httpServer  *httpdelivery.Server
}

// New builds the application. It returns an error if a required resource
// cannot be opened; resources opened before the failure are closed.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{cfg: cfg}

	app.initLogger()

	if err := app.initOutboundAdapters(ctx); err != nil {
		app.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	if err := app.initCoreService(ctx); err != nil {
		app.Close(context.WithoutCancel(ctx))
		return nil, err
	}
	app.initInboundAdapters()

	return app, nil
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initOutboundAdapters(ctx context.Context) error {
	const op = "App.initOutboundAdapters"
	log := slog.With("op", op)

	db, err := postgres.Open(ctx, app.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	app.db = db

	if addr := app.cfg.Redis.Addr; addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return fmt.Errorf("%s: failed to connect to redis: %w", op, err)
		}
		app.redis = client
		app.idempotency = redisrepo.NewIdempotencyStore(client, app.cfg.Redis.IdempotencyTTL)
		log.Info("checkout idempotency enabled", "redis_addr", addr)
	} else {
		log.Warn("redis address not set, checkout idempotency disabled")
	}

	if brokers := app.cfg.Broker.SeedBrokers; len(brokers) > 0 {
		app.producer = kafka.NewPublisher(brokers)
		app.publisher = app.producer
		log.Info("order events enabled", "brokers", brokers, "topic", app.cfg.Broker.OrdersTopic)
	} else {
		app.publisher = messaging.NopPublisher{}
		log.Warn("no seed brokers set, order events disabled")
	}
	return nil
}

func (app *App) initCoreService(ctx context.Context) error {
	const op = "App.initCoreService"

	p := app.cfg.Pricing
	rules, err := pricing.ParseRules(p.TaxRate, p.FreeShippingThreshold, p.ShippingFee, p.Currency)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	productRepo := postgres.NewProductRepository(app.db)
	cartRepo := postgres.NewCartRepository(app.db)
	orderRepo := postgres.NewOrderRepository(app.db)

	app.service.catalog = service.NewCatalogService(productRepo)
	app.service.cart = service.NewCartService(cartRepo, productRepo)

	app.service.orders = service.NewOrderService(
		orderRepo,
		productRepo,
		app.idempotency,
		app.publisher,
		rules,
		app.cfg.Broker.OrdersTopic,
	)

	if app.cfg.SeedCatalog {
		if err := app.service.catalog.Seed(ctx, service.DefaultCatalog()); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

func (app *App) initInboundAdapters() {
	handler := httpdelivery.NewHandler(
		app.service.catalog,
		app.service.cart,
		app.service.orders,
		app.db,
	)
	app.httpServer = httpdelivery.NewServer(app.cfg.HTTPServerAddr, httpdelivery.NewRouter(handler))
}

// Run starts serving. stopFn is called if the server stops on its own.
func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

// Close releases resources in reverse order of use: HTTP first, then the
// broker, Redis and the database.
func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.httpServer != nil {
		app.httpServer.Close(ctx)
	}
	if app.producer != nil {
		app.producer.Close()
	}
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			slog.Error("failed to close redis client", "err", err)
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			slog.Error("failed to close database", "err", err)
		}
	}

	slog.Info("application is closed")
}
