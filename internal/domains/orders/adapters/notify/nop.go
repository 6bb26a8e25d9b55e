package notify

import (
	"context"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

var _ ports.Notifier = (*NopNotifier)(nil)

// NopNotifier discards notifications. The Temporal worker uses it for the
// placement activity so delivery happens exactly once through the dedicated
// notification activity.
type NopNotifier struct{}

func NewNopNotifier() *NopNotifier { return &NopNotifier{} }

func (NopNotifier) OrderConfirmed(context.Context, *domain.Order) error { return nil }
func (NopNotifier) OrderShipped(context.Context, *domain.Order) error   { return nil }
func (NopNotifier) OrderCancelled(context.Context, *domain.Order) error { return nil }
