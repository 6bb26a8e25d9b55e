package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	notifyclient "github.com/Apurer/go-order-api-server/internal/clients/http/notify"
	catalogmemory "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogports "github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	orderinventory "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/inventory"
	ordermemory "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/memory"
	ordernotify "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/notify"
	orderobs "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/persistence/postgres"
	orderapp "github.com/Apurer/go-order-api-server/internal/domains/orders/application"
	orderports "github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
	"github.com/Apurer/go-order-api-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-order-api-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-order-api-server/internal/platform/postgres"
	orderactivities "github.com/Apurer/go-order-api-server/internal/platform/temporal/activities/orders"
	orderwfs "github.com/Apurer/go-order-api-server/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "order-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, catalogRepo, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()

	inventory := orderinventory.NewCatalogInventory(catalogRepo)
	// The placement activity runs with a no-op notifier: the workflow sends the
	// confirmation through a dedicated activity so retries stay deduplicated.
	placeService := orderobs.New(
		orderapp.NewService(orderRepo, inventory, ordernotify.NewNopNotifier()),
		orderobs.WithLogger(logger),
		orderobs.WithTracer(instruments.Tracer("internal.orders.application")),
		orderobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(placeService, orderRepo, buildNotifier(logger))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderwfs.OrderPlacementTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderwfs.OrderPlacementWorkflow, workflow.RegisterOptions{Name: orderwfs.OrderPlacementWorkflowName})
	w.RegisterActivityWithOptions(activities.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	w.RegisterActivityWithOptions(activities.SendConfirmation, activity.RegisterOptions{Name: orderactivities.SendConfirmationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderwfs.OrderPlacementTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (orderports.Repository, catalogports.Repository, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to migrate postgres schema, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return ordermemory.NewRepository(), catalogmemory.NewRepository(), func() {}
	}
	logger.Info("worker repositories configured with postgres")
	return orderpostgres.NewRepository(db), catalogpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func buildNotifier(logger *slog.Logger) orderports.Notifier {
	baseURL := strings.TrimSpace(os.Getenv("NOTIFY_BASE_URL"))
	if baseURL == "" {
		logger.Warn("NOTIFY_BASE_URL not set, logging notifications instead of sending them")
		return ordernotify.NewLogNotifier(logger)
	}
	gateway, err := notifyclient.NewClient(baseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		logger.Warn("invalid notification gateway URL, logging notifications instead", slog.String("error", err.Error()))
		return ordernotify.NewLogNotifier(logger)
	}
	return ordernotify.NewGatewayNotifier(gateway)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
