package notify

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	notifyclient "github.com/Apurer/go-order-api-server/internal/clients/http/notify"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

const (
	templateOrderConfirmed = "order-confirmed"
	templateOrderShipped   = "order-shipped"
	templateOrderCancelled = "order-cancelled"
)

var _ ports.Notifier = (*GatewayNotifier)(nil)

// GatewayNotifier delivers order notifications through the notification
// gateway HTTP API.
type GatewayNotifier struct {
	client *notifyclient.Client
}

// NewGatewayNotifier wires the gateway client into a notifier adapter.
func NewGatewayNotifier(client *notifyclient.Client) *GatewayNotifier {
	return &GatewayNotifier{client: client}
}

func (n *GatewayNotifier) OrderConfirmed(ctx context.Context, order *domain.Order) error {
	return n.send(ctx, order, templateOrderConfirmed)
}

func (n *GatewayNotifier) OrderShipped(ctx context.Context, order *domain.Order) error {
	return n.send(ctx, order, templateOrderShipped)
}

func (n *GatewayNotifier) OrderCancelled(ctx context.Context, order *domain.Order) error {
	return n.send(ctx, order, templateOrderCancelled)
}

func (n *GatewayNotifier) send(ctx context.Context, order *domain.Order, template string) error {
	if n == nil || n.client == nil {
		return errors.New("gateway notifier not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	payload := ToPayload(order, template)
	// Each state change of an order must reach the customer exactly once.
	key := fmt.Sprintf("%s-%d", template, order.ID)
	return n.client.Send(ctx, payload, notifyclient.WithIdempotencyKey(key))
}

// ToPayload converts the order aggregate into the gateway payload shape.
func ToPayload(order *domain.Order, template string) notifyclient.MessagePayload {
	variables := map[string]any{
		"orderId":     order.ID,
		"totalAmount": order.TotalAmount,
		"status":      string(order.Status),
		"itemCount":   len(order.Items),
	}
	return notifyclient.MessagePayload{
		Recipient: order.CustomerEmail,
		Template:  template,
		Reference: strconv.FormatInt(order.ID, 10),
		Variables: variables,
	}
}
