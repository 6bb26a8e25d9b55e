package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var (
	ErrEmptyItems        = errors.New("order must contain at least one item")
	ErrEmptyCustomer     = errors.New("customer email is required")
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInvalidStatus     = errors.New("order status is invalid")
	ErrInvalidTransition = errors.New("order status transition is not allowed")
)

// OrderItem references a product with the quantity requested and the unit
// price snapshotted at placement time.
type OrderItem struct {
	ProductID int64
	Quantity  int32
	UnitPrice float64
}

// Order models the purchase order aggregate.
type Order struct {
	ID            int64
	CustomerEmail string
	TotalAmount   float64
	Items         []OrderItem
	Status        Status
	PlacedAt      time.Time
}

// NewOrder validates and constructs a new Order aggregate in pending state.
func NewOrder(id int64, customerEmail string, items []OrderItem) (*Order, error) {
	order := &Order{
		ID:            id,
		CustomerEmail: strings.TrimSpace(customerEmail),
		Items:         append([]OrderItem{}, items...),
		Status:        StatusPending,
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	order.RecalculateTotal()
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.CustomerEmail) == "" {
		return ErrEmptyCustomer
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range o.Items {
		if item.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// RecalculateTotal derives the total amount from the item snapshots.
func (o *Order) RecalculateTotal() {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	o.TotalAmount = total
}

// Confirm transitions a pending order to confirmed once stock is reserved.
func (o *Order) Confirm() error {
	return o.transition(StatusConfirmed, StatusPending)
}

// Ship transitions a confirmed order to shipped.
func (o *Order) Ship() error {
	return o.transition(StatusShipped, StatusConfirmed)
}

// Deliver transitions a shipped order to delivered.
func (o *Order) Deliver() error {
	return o.transition(StatusDelivered, StatusShipped)
}

// Cancel moves the order to cancelled from any non-terminal state.
func (o *Order) Cancel() error {
	return o.transition(StatusCancelled, StatusPending, StatusConfirmed, StatusShipped)
}

// IsTerminal reports whether the order reached a final state.
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}

// UpdateStatus ensures only known states are accepted and defaults to pending.
func (o *Order) UpdateStatus(status Status) error {
	if status == "" {
		status = StatusPending
	}
	if !isValidStatus(status) {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

func (o *Order) transition(to Status, from ...Status) error {
	for _, candidate := range from {
		if o.Status == candidate {
			o.Status = to
			return nil
		}
	}
	return ErrInvalidTransition
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}
