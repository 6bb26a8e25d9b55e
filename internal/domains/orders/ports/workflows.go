package ports

import (
	"context"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
)

// WorkflowOrchestrator exposes durable workflow operations required by the
// orders bounded context.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error)
}
