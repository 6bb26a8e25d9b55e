package ports

import (
	"context"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters (inbound/driving port).
type Service interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
	ShipOrder(ctx context.Context, id int64) (*domain.Order, error)
	DeliverOrder(ctx context.Context, id int64) (*domain.Order, error)
	CancelOrder(ctx context.Context, id int64) (*domain.Order, error)
	GetOrderByID(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
