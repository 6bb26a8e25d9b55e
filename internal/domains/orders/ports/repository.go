package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists order aggregates.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*domain.Order, error)
	// PurgeStale removes pending orders that were placed before the cutoff
	// and reports how many were deleted.
	PurgeStale(ctx context.Context, placedBefore time.Time) (int64, error)
}
