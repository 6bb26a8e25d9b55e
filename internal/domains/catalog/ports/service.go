package ports

import (
	"context"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	AddProduct(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetProductByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error)
	UpdateStock(ctx context.Context, id int64, quantity int32) (*projection.Projection[*domain.Product], error)
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]*projection.Projection[*domain.Product], error)
}
