// Package api assembles the HTTP API process: configuration, observability,
// repositories, workflows, and the gin router.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	notifyclient "github.com/Apurer/go-order-api-server/internal/clients/http/notify"
	catalogmemory "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-order-api-server/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	orderinventory "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/inventory"
	ordermemory "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/memory"
	ordernotify "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/notify"
	orderobs "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/persistence/postgres"
	orderworkflows "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/workflows"
	orderapp "github.com/Apurer/go-order-api-server/internal/domains/orders/application"
	orderports "github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-order-api-server/internal/httpapi"
	"github.com/Apurer/go-order-api-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-order-api-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-order-api-server/internal/platform/postgres"
)

// Run boots the order HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "order-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, catalogRepo, cleanupRepos := buildRepositories(ctx, cfg, logger)
	defer cleanupRepos()

	catalogService := catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	inventory := orderinventory.NewCatalogInventory(catalogRepo)
	notifier := buildNotifier(cfg, logger)
	orderService := orderobs.New(
		orderapp.NewService(orderRepo, inventory, notifier),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orchestrator orderports.WorkflowOrchestrator = orderworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline PlaceOrder", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = orderworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := httpapi.ApiHandleFunctions{
		OrderAPI:   httpapi.NewOrderAPI(orderService, orchestrator),
		CatalogAPI: httpapi.NewCatalogAPI(catalogService),
	}

	// Middleware must be installed before route registration so gin bakes it
	// into every handler chain.
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName))
	router := httpapi.NewRouterWithGinEngine(engine, handlers)
	addr := ":" + cfg.Port
	logger.Info("order API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("order API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (orderports.Repository, catalogports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	logger.Info("repositories configured with postgres")
	return orderpostgres.NewRepository(db), catalogpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func buildNotifier(cfg Config, logger *slog.Logger) orderports.Notifier {
	if cfg.NotifyBaseURL == "" {
		logger.Warn("NOTIFY_BASE_URL not set, logging notifications instead of sending them")
		return ordernotify.NewLogNotifier(logger)
	}
	gateway, err := notifyclient.NewClient(cfg.NotifyBaseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		logger.Warn("invalid notification gateway URL, logging notifications instead", slog.String("error", err.Error()))
		return ordernotify.NewLogNotifier(logger)
	}
	return ordernotify.NewGatewayNotifier(gateway)
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
