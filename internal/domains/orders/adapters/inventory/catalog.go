// Package inventory bridges the orders bounded context to the catalog's
// stock, so order placement never depends on catalog types directly.
package inventory

import (
	"context"
	"errors"
	"fmt"

	catalogports "github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

var _ ports.Inventory = (*CatalogInventory)(nil)

// CatalogInventory implements the orders inventory port on top of the
// catalog repository's atomic stock movements.
type CatalogInventory struct {
	catalog catalogports.Repository
}

// NewCatalogInventory wires the catalog repository into the inventory port.
func NewCatalogInventory(catalog catalogports.Repository) *CatalogInventory {
	return &CatalogInventory{catalog: catalog}
}

// Reserve applies the catalog's conditional decrement and translates its
// sentinel errors into the orders port vocabulary.
func (i *CatalogInventory) Reserve(ctx context.Context, productID int64, quantity int32) (float64, error) {
	if i == nil || i.catalog == nil {
		return 0, errors.New("catalog inventory not configured")
	}
	price, err := i.catalog.ReserveStock(ctx, productID, quantity)
	if err != nil {
		return 0, translate(productID, err)
	}
	return price, nil
}

// Release returns reserved units to the catalog.
func (i *CatalogInventory) Release(ctx context.Context, productID int64, quantity int32) error {
	if i == nil || i.catalog == nil {
		return errors.New("catalog inventory not configured")
	}
	if err := i.catalog.ReleaseStock(ctx, productID, quantity); err != nil {
		return translate(productID, err)
	}
	return nil
}

func translate(productID int64, err error) error {
	switch {
	case errors.Is(err, catalogports.ErrInsufficientStock):
		return fmt.Errorf("product %d: %w", productID, ports.ErrInsufficientStock)
	case errors.Is(err, catalogports.ErrNotFound):
		return fmt.Errorf("product %d: %w", productID, ports.ErrUnknownProduct)
	default:
		return err
	}
}
