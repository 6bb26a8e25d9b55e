package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

// Service orchestrates the order lifecycle: stock reservation, persistence,
// and customer notification.
type Service struct {
	repo      ports.Repository
	inventory ports.Inventory
	notifier  ports.Notifier
}

// NewService wires the orders service with its collaborators.
func NewService(repo ports.Repository, inventory ports.Inventory, notifier ports.Notifier) *Service {
	return &Service{repo: repo, inventory: inventory, notifier: notifier}
}

// PlaceOrder reserves stock for every item, confirms the order, persists it,
// and notifies the customer. Each reservation is a single atomic conditional
// decrement; when any item cannot be covered, or persistence fails, all
// reservations made so far are released again so a failed placement leaves
// the stock unchanged.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.UpdateStatus(order.Status); err != nil {
		return nil, mapError(err)
	}
	if err := order.Validate(); err != nil {
		return nil, mapError(err)
	}
	if order.Status != domain.StatusPending {
		return nil, mapError(domain.ErrInvalidTransition)
	}

	reserved := make([]domain.OrderItem, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		unitPrice, err := s.inventory.Reserve(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.release(ctx, reserved)
			return nil, mapError(err)
		}
		if item.UnitPrice == 0 {
			item.UnitPrice = unitPrice
		}
		reserved = append(reserved, *item)
	}
	order.RecalculateTotal()

	if err := order.Confirm(); err != nil {
		s.release(ctx, reserved)
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		s.release(ctx, reserved)
		return nil, err
	}

	// The order is committed at this point; notification delivery must not
	// undo the placement.
	_ = s.notifier.OrderConfirmed(ctx, saved)
	return saved, nil
}

// ShipOrder transitions a confirmed order to shipped and notifies the customer.
func (s *Service) ShipOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Ship(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	_ = s.notifier.OrderShipped(ctx, saved)
	return saved, nil
}

// DeliverOrder marks a shipped order as delivered.
func (s *Service) DeliverOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Deliver(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, order)
}

// CancelOrder cancels a non-terminal order. When the order had already been
// confirmed its reserved stock is returned to the catalog.
func (s *Service) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	restock := order.Status == domain.StatusConfirmed || order.Status == domain.StatusShipped
	if err := order.Cancel(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	if restock {
		s.release(ctx, saved.Items)
	}
	_ = s.notifier.OrderCancelled(ctx, saved)
	return saved, nil
}

// GetOrderByID loads a single order aggregate.
func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders exposes all orders for admin use cases.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) release(ctx context.Context, items []domain.OrderItem) {
	for _, item := range items {
		// Compensation runs even when the request context is done.
		_ = s.inventory.Release(context.WithoutCancel(ctx), item.ProductID, item.Quantity)
	}
}

var _ ports.Service = (*Service)(nil)
