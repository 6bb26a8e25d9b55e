package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	orderdomain "github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	orderports "github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

const (
	// PlaceOrderActivityName reserves stock and persists the order without
	// notifying the customer.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// SendConfirmationActivityName delivers the confirmation notification for
	// an already persisted order.
	SendConfirmationActivityName = "orders.activities.SendConfirmation"
)

// OrderIdentifier addresses a persisted order inside workflow payloads.
type OrderIdentifier struct {
	ID int64
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	placeService orderports.Service
	repo         orderports.Repository
	notifier     orderports.Notifier
}

// NewActivities wires the orders collaborators into the Temporal activities bundle.
// placeService should be constructed with a no-op notifier to avoid duplicate
// deliveries; SendConfirmation owns the customer-facing notification.
func NewActivities(placeService orderports.Service, repo orderports.Repository, notifier orderports.Notifier) *Activities {
	return &Activities{
		placeService: placeService,
		repo:         repo,
		notifier:     notifier,
	}
}

// PlaceOrder reserves stock and persists the order aggregate.
func (a *Activities) PlaceOrder(ctx context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.placeService == nil {
		logger.Error("order placement activity not initialized")
		return nil, errors.New("order placement activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "orderId", order.ID)
	saved, err := a.placeService.PlaceOrder(ctx, order)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "orderId", order.ID, "error", err)
		return nil, err
	}
	logger.Info("PlaceOrder activity completed", "orderId", saved.ID)
	return saved, nil
}

// SendConfirmation loads an order and pushes the confirmation notification.
func (a *Activities) SendConfirmation(ctx context.Context, input OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("order confirmation activity not initialized", "orderId", input.ID)
		return errors.New("order confirmation activity not initialized")
	}
	if a.notifier == nil {
		logger.Info("notifier not configured; skipping", "orderId", input.ID)
		return nil
	}
	if a.repo == nil {
		logger.Error("order repository not configured for confirmation", "orderId", input.ID)
		return errors.New("order repository not configured for confirmation")
	}

	var hb confirmationHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("SendConfirmation already completed in prior attempt; skipping", "orderId", input.ID)
		return nil
	}

	logger.Info("SendConfirmation activity started", "orderId", input.ID)
	order, err := a.repo.GetByID(ctx, input.ID)
	if err != nil {
		logger.Error("SendConfirmation failed to load order", "orderId", input.ID, "error", err)
		return err
	}
	if err := a.notifier.OrderConfirmed(ctx, order); err != nil {
		logger.Error("SendConfirmation failed", "orderId", input.ID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, confirmationHeartbeat{Completed: true})
	logger.Info("SendConfirmation activity completed", "orderId", input.ID)
	return nil
}

type confirmationHeartbeat struct {
	Completed bool
}
