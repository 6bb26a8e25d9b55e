package mapper

import (
	"time"

	"github.com/oapi-codegen/runtime/types"

	orderdomain "github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
)

// OrderItem represents the transport-layer shape of one order line.
type OrderItem struct {
	ProductID int64   `json:"productId"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice,omitempty"`
}

// Order represents the transport-layer shape used by the HTTP handlers.
// CustomerEmail uses the runtime email type so binding rejects malformed
// addresses before the domain sees them.
type Order struct {
	ID            int64       `json:"id,omitempty"`
	CustomerEmail types.Email `json:"customerEmail"`
	TotalAmount   float64     `json:"totalAmount,omitempty"`
	Items         []OrderItem `json:"items"`
	Status        string      `json:"status,omitempty"`
	PlacedAt      *time.Time  `json:"placedAt,omitempty"`
}

// ToDomainOrder converts a transport order into the domain model.
func ToDomainOrder(order Order) (*orderdomain.Order, error) {
	items := make([]orderdomain.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderdomain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return orderdomain.NewOrder(order.ID, string(order.CustomerEmail), items)
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	result := Order{
		ID:            order.ID,
		CustomerEmail: types.Email(order.CustomerEmail),
		TotalAmount:   order.TotalAmount,
		Items:         items,
		Status:        string(order.Status),
	}
	if !order.PlacedAt.IsZero() {
		placedAt := order.PlacedAt
		result.PlacedAt = &placedAt
	}
	return result
}

// FromDomainOrderList converts a list of domain orders.
func FromDomainOrderList(orders []*orderdomain.Order) []Order {
	list := make([]Order, 0, len(orders))
	for _, order := range orders {
		list = append(list, FromDomainOrder(order))
	}
	return list
}
