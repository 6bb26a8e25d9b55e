package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInsufficientStock mirrors domain.ErrInsufficientStock at the port
	// boundary so adapters can report conditional-decrement failures without
	// loading the aggregate.
	ErrInsufficientStock = errors.New("insufficient stock for reservation")
)

// Repository persists products and offers atomic stock movements.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
	// ReserveStock applies a single conditional decrement: it subtracts
	// quantity only when the current stock covers it, returning the product's
	// unit price at reservation time. Fails with ErrInsufficientStock
	// otherwise, leaving the stock untouched.
	ReserveStock(ctx context.Context, id int64, quantity int32) (float64, error)
	// ReleaseStock adds quantity back to the product's stock.
	ReleaseStock(ctx context.Context, id int64, quantity int32) error
	// UpdateStock replaces the absolute stock level.
	UpdateStock(ctx context.Context, id int64, quantity int32) (*projection.Projection[*domain.Product], error)
}
