package ports

import (
	"context"
	"errors"
)

var (
	// ErrInsufficientStock indicates a reservation asked for more units than
	// the product currently holds.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrUnknownProduct indicates an item referenced a product the catalog
	// does not know.
	ErrUnknownProduct = errors.New("unknown product")
)

// Inventory is the outbound port order placement uses to reserve stock.
// Reserve must apply the decrement atomically: it either reduces the stock by
// quantity and returns the product's current unit price, or fails with
// ErrInsufficientStock leaving the stock untouched.
type Inventory interface {
	Reserve(ctx context.Context, productID int64, quantity int32) (unitPrice float64, err error)
	// Release returns previously reserved units, used to compensate a failed
	// placement or a cancellation.
	Release(ctx context.Context, productID int64, quantity int32) error
}
