package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
)

func TestReserveStock_ConditionalDecrement(t *testing.T) {
	repo := NewRepository()
	product, err := domain.NewProduct(0, "Laptop", 999.90, 5)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)

	price, err := repo.ReserveStock(context.Background(), saved.Entity.ID, 2)
	require.NoError(t, err)
	require.Equal(t, 999.90, price)

	after, err := repo.GetByID(context.Background(), saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int32(3), after.Entity.StockQuantity)

	_, err = repo.ReserveStock(context.Background(), saved.Entity.ID, 10)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	after, err = repo.GetByID(context.Background(), saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int32(3), after.Entity.StockQuantity)
}

func TestReserveStock_NeverOversellsUnderContention(t *testing.T) {
	repo := NewRepository()
	product, err := domain.NewProduct(0, "Laptop", 999.90, 10)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)

	const workers = 25
	var wg sync.WaitGroup
	var mu sync.Mutex
	reserved := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ReserveStock(context.Background(), saved.Entity.ID, 1); err == nil {
				mu.Lock()
				reserved++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 10, reserved)
	after, err := repo.GetByID(context.Background(), saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int32(0), after.Entity.StockQuantity)
}

func TestReleaseStock_RestoresUnits(t *testing.T) {
	repo := NewRepository()
	product, err := domain.NewProduct(0, "Laptop", 999.90, 5)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), product)
	require.NoError(t, err)

	_, err = repo.ReserveStock(context.Background(), saved.Entity.ID, 4)
	require.NoError(t, err)
	require.NoError(t, repo.ReleaseStock(context.Background(), saved.Entity.ID, 4))

	after, err := repo.GetByID(context.Background(), saved.Entity.ID)
	require.NoError(t, err)
	require.Equal(t, int32(5), after.Entity.StockQuantity)
}
