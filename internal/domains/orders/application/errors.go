package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrInvalidState signals the order is not in a state that permits the
	// requested transition.
	ErrInvalidState = errors.New("invalid order state")
	// ErrInsufficientStock signals at least one item could not be covered by
	// the available stock. A placement failing with it has no side effects.
	ErrInsufficientStock = errors.New("insufficient stock for order")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ports.ErrInsufficientStock) {
		return fmt.Errorf("%w: %w", ErrInsufficientStock, err)
	}
	if errors.Is(err, domain.ErrInvalidTransition) {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}
	if errors.Is(err, ports.ErrUnknownProduct) ||
		errors.Is(err, domain.ErrEmptyItems) ||
		errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
