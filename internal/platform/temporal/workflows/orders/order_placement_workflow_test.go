package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	orderdomain "github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	orderactivities "github.com/Apurer/go-order-api-server/internal/platform/temporal/activities/orders"
)

func newPlacementTestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterWorkflowWithOptions(OrderPlacementWorkflow, workflow.RegisterOptions{Name: OrderPlacementWorkflowName})
	env.RegisterActivityWithOptions(placeOrderStub, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	env.RegisterActivityWithOptions(sendConfirmationStub, activity.RegisterOptions{Name: orderactivities.SendConfirmationActivityName})
	return env
}

// Stubs give the test environment the activity signatures; every test mocks
// them through OnActivity.
func placeOrderStub(_ context.Context, order *orderdomain.Order) (*orderdomain.Order, error) {
	return order, nil
}

func sendConfirmationStub(_ context.Context, _ orderactivities.OrderIdentifier) error {
	return nil
}

func pendingOrder(t *testing.T) *orderdomain.Order {
	t.Helper()
	order, err := orderdomain.NewOrder(0, "jordan@example.com", []orderdomain.OrderItem{
		{ProductID: 11, Quantity: 2, UnitPrice: 19.95},
	})
	require.NoError(t, err)
	return order
}

func confirmedOrder(t *testing.T, id int64) *orderdomain.Order {
	t.Helper()
	order := pendingOrder(t)
	order.ID = id
	require.NoError(t, order.Confirm())
	return order
}

func TestOrderPlacementWorkflow_PlacesAndConfirms(t *testing.T) {
	env := newPlacementTestEnv(t)
	placed := confirmedOrder(t, 42)
	env.OnActivity(orderactivities.PlaceOrderActivityName, mock.Anything, mock.Anything).Return(placed, nil).Once()
	env.OnActivity(orderactivities.SendConfirmationActivityName, mock.Anything, mock.MatchedBy(func(input orderactivities.OrderIdentifier) bool {
		return input.ID == 42
	})).Return(nil).Once()

	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{Order: pendingOrder(t)})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, int64(42), result.ID)
	require.Equal(t, orderdomain.StatusConfirmed, result.Status)
	env.AssertExpectations(t)
}

func TestOrderPlacementWorkflow_NotificationFailureKeepsOrderPlaced(t *testing.T) {
	env := newPlacementTestEnv(t)
	placed := confirmedOrder(t, 7)
	env.OnActivity(orderactivities.PlaceOrderActivityName, mock.Anything, mock.Anything).Return(placed, nil).Once()
	// Three attempts is the confirmation retry ceiling; the workflow must
	// still hand back the persisted order once they are exhausted.
	env.OnActivity(orderactivities.SendConfirmationActivityName, mock.Anything, mock.Anything).
		Return(errors.New("notification gateway unreachable")).Times(3)

	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{Order: pendingOrder(t)})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var result orderdomain.Order
	require.NoError(t, env.GetWorkflowResult(&result))
	require.Equal(t, int64(7), result.ID)
	require.Equal(t, orderdomain.StatusConfirmed, result.Status)
	env.AssertExpectations(t)
}

func TestOrderPlacementWorkflow_PlacementFailureSkipsConfirmation(t *testing.T) {
	env := newPlacementTestEnv(t)
	env.OnActivity(orderactivities.PlaceOrderActivityName, mock.Anything, mock.Anything).
		Return(nil, errors.New("stock reservation failed")).Once()

	env.ExecuteWorkflow(OrderPlacementWorkflowName, OrderPlacementWorkflowInput{Order: pendingOrder(t)})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	env.AssertNotCalled(t, orderactivities.SendConfirmationActivityName)
	env.AssertExpectations(t)
}
