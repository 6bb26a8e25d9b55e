package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	orderpostgres "github.com/Apurer/go-order-api-server/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/Apurer/go-order-api-server/internal/platform/postgres"
)

// DefaultPurgeTTL bounds how long a pending order may sit before it is reaped.
const DefaultPurgeTTL = 24 * time.Hour

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot purge orders")
	}

	repo := orderpostgres.NewRepository(db)
	cutoff := time.Now().Add(-purgeTTLFromEnv())
	purged, err := repo.PurgeStale(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge stale orders: %v", err)
	}
	log.Printf("order purge completed: %d pending orders removed", purged)
}

func purgeTTLFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("ORDER_PURGE_TTL_HOURS"))
	if raw == "" {
		return DefaultPurgeTTL
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return DefaultPurgeTTL
	}
	return time.Duration(hours) * time.Hour
}
