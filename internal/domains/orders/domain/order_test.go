package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_ValidatesItems(t *testing.T) {
	_, err := NewOrder(1, "customer@example.com", nil)
	require.ErrorIs(t, err, ErrEmptyItems)

	_, err = NewOrder(1, "customer@example.com", []OrderItem{{ProductID: 0, Quantity: 1}})
	require.ErrorIs(t, err, ErrInvalidProductID)

	_, err = NewOrder(1, "customer@example.com", []OrderItem{{ProductID: 1, Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewOrder(1, "  ", []OrderItem{{ProductID: 1, Quantity: 1}})
	require.ErrorIs(t, err, ErrEmptyCustomer)
}

func TestNewOrder_ComputesTotal(t *testing.T) {
	order, err := NewOrder(1, "customer@example.com", []OrderItem{
		{ProductID: 1, Quantity: 2, UnitPrice: 9.5},
		{ProductID: 2, Quantity: 1, UnitPrice: 4},
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)
	require.InDelta(t, 23.0, order.TotalAmount, 1e-9)
}

func TestOrder_StatusMachine(t *testing.T) {
	order, err := NewOrder(1, "customer@example.com", []OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: 1}})
	require.NoError(t, err)

	require.ErrorIs(t, order.Ship(), ErrInvalidTransition)
	require.ErrorIs(t, order.Deliver(), ErrInvalidTransition)

	require.NoError(t, order.Confirm())
	require.Equal(t, StatusConfirmed, order.Status)
	require.ErrorIs(t, order.Confirm(), ErrInvalidTransition)

	require.NoError(t, order.Ship())
	require.NoError(t, order.Deliver())
	require.True(t, order.IsTerminal())

	require.ErrorIs(t, order.Cancel(), ErrInvalidTransition)
}

func TestOrder_CancelFromAnyNonTerminalState(t *testing.T) {
	for _, status := range []Status{StatusPending, StatusConfirmed, StatusShipped} {
		order, err := NewOrder(1, "customer@example.com", []OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: 1}})
		require.NoError(t, err)
		require.NoError(t, order.UpdateStatus(status))
		require.NoError(t, order.Cancel())
		require.Equal(t, StatusCancelled, order.Status)
	}
}

func TestOrder_UpdateStatusDefaultsToPending(t *testing.T) {
	order := &Order{}
	require.NoError(t, order.UpdateStatus(""))
	require.Equal(t, StatusPending, order.Status)
	require.ErrorIs(t, order.UpdateStatus("unknown"), ErrInvalidStatus)
}
