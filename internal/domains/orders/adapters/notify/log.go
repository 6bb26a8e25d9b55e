package notify

import (
	"context"
	"log/slog"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier records notifications in the process log. It stands in for the
// gateway in local development and when NOTIFY_BASE_URL is not set.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier wraps the logger into a notifier adapter.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) OrderConfirmed(ctx context.Context, order *domain.Order) error {
	n.log(ctx, "order confirmation notification", order)
	return nil
}

func (n *LogNotifier) OrderShipped(ctx context.Context, order *domain.Order) error {
	n.log(ctx, "order shipped notification", order)
	return nil
}

func (n *LogNotifier) OrderCancelled(ctx context.Context, order *domain.Order) error {
	n.log(ctx, "order cancelled notification", order)
	return nil
}

func (n *LogNotifier) log(ctx context.Context, msg string, order *domain.Order) {
	if n == nil || n.logger == nil || order == nil {
		return
	}
	n.logger.LogAttrs(ctx, slog.LevelInfo, msg,
		slog.Int64("order.id", order.ID),
		slog.String("order.customer", order.CustomerEmail),
		slog.String("order.status", string(order.Status)))
}
