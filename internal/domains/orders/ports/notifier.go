package ports

import (
	"context"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
)

// Notifier defines outbound customer notifications for order state changes.
// Delivery is best effort: callers treat failures as non-fatal once the order
// state is committed.
type Notifier interface {
	OrderConfirmed(ctx context.Context, order *domain.Order) error
	OrderShipped(ctx context.Context, order *domain.Order) error
	OrderCancelled(ctx context.Context, order *domain.Order) error
}
