package domain

import "time"

// Event is the base interface for all domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderConfirmed is raised when stock was reserved and the order persisted.
type OrderConfirmed struct {
	BaseEvent
	OrderID       int64
	CustomerEmail string
	TotalAmount   float64
}

// EventName returns the event type identifier.
func (e OrderConfirmed) EventName() string {
	return "orders.order.confirmed"
}

// OrderShipped is raised when a confirmed order leaves the warehouse.
type OrderShipped struct {
	BaseEvent
	OrderID       int64
	CustomerEmail string
}

// EventName returns the event type identifier.
func (e OrderShipped) EventName() string {
	return "orders.order.shipped"
}

// OrderDelivered is raised when the carrier confirms delivery.
type OrderDelivered struct {
	BaseEvent
	OrderID int64
}

// EventName returns the event type identifier.
func (e OrderDelivered) EventName() string {
	return "orders.order.delivered"
}

// OrderCancelled is raised when an order is cancelled and stock released.
type OrderCancelled struct {
	BaseEvent
	OrderID        int64
	PreviousStatus Status
}

// EventName returns the event type identifier.
func (e OrderCancelled) EventName() string {
	return "orders.order.cancelled"
}
