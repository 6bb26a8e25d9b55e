package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-order-api-server/internal/platform/temporal/activities/orders"
)

// RunOrderPlacementSequence executes the ordered set of activities needed to
// place an order and notify the customer.
func RunOrderPlacementSequence(ctx workflow.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order placement sequence started", "orderId", order.ID)
	// Placement reserves stock and is not idempotent across attempts, so it
	// runs exactly once; the service compensates internally on failure.
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	notifyOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		HeartbeatTimeout:    time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var placed orderdomain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, order).Get(ctx, &placed)
	if err != nil {
		logger.Error("order placement sequence failed", "orderId", order.ID, "error", err)
		return nil, err
	}
	logger.Info("order placement sequence persisted", "orderId", placed.ID)

	// Confirmation is best effort once the order is committed.
	notifyInput := orderactivities.OrderIdentifier{ID: placed.ID}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, notifyOptions), orderactivities.SendConfirmationActivityName, notifyInput).Get(ctx, nil); err != nil {
		logger.Error("order placement sequence notification failed", "orderId", placed.ID, "error", err)
		return &placed, nil
	}
	logger.Info("order placement sequence notified", "orderId", placed.ID)
	return &placed, nil
}
