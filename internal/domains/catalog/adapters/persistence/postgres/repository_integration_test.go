//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-order-api-server/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("catalog_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct(0, "Laptop", 999.90, 5)
	require.NoError(t, err)
	product.ReplaceTags([]string{"electronics", "sale"})

	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	require.NotZero(t, saved.Entity.ID)

	fetched, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", fetched.Entity.Name)
	assert.Equal(t, int32(5), fetched.Entity.StockQuantity)
	assert.Equal(t, []string{"electronics", "sale"}, fetched.Entity.Tags)
	assert.False(t, fetched.Metadata.CreatedAt.IsZero())
}

func TestRepository_ReserveStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct(0, "Laptop", 999.90, 5)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	price, err := repo.ReserveStock(ctx, saved.Entity.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 999.90, price)

	after, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(3), after.Entity.StockQuantity)

	_, err = repo.ReserveStock(ctx, saved.Entity.ID, 10)
	assert.ErrorIs(t, err, ports.ErrInsufficientStock)

	_, err = repo.ReserveStock(ctx, 404, 1)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_ReserveStock_Concurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct(0, "Laptop", 999.90, 10)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	const workers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ReserveStock(ctx, saved.Entity.ID, 1); err == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, reserved)
	after, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), after.Entity.StockQuantity)
}

func TestRepository_ReleaseAndUpdateStock(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	product, err := domain.NewProduct(0, "Laptop", 999.90, 5)
	require.NoError(t, err)
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)

	_, err = repo.ReserveStock(ctx, saved.Entity.ID, 3)
	require.NoError(t, err)
	require.NoError(t, repo.ReleaseStock(ctx, saved.Entity.ID, 3))

	after, err := repo.GetByID(ctx, saved.Entity.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), after.Entity.StockQuantity)

	updated, err := repo.UpdateStock(ctx, saved.Entity.ID, 42)
	require.NoError(t, err)
	assert.Equal(t, int32(42), updated.Entity.StockQuantity)
}

func TestRepository_DeleteAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Laptop", "Mouse"} {
		product, err := domain.NewProduct(0, name, 10, 1)
		require.NoError(t, err)
		_, err = repo.Save(ctx, product)
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, list[0].Entity.ID))
	_, err = repo.GetByID(ctx, list[0].Entity.ID)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
