package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-order-api-server/internal/domains/orders/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	orders   map[int64]*domain.Order
	failSave error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*domain.Order{}}
}

func (f *fakeOrderRepo) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if f.failSave != nil {
		return nil, f.failSave
	}
	clone := *order
	clone.Items = append([]domain.OrderItem{}, order.Items...)
	f.orders[order.ID] = &clone
	return &clone, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if o, ok := f.orders[id]; ok {
		clone := *o
		clone.Items = append([]domain.OrderItem{}, o.Items...)
		return &clone, nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.orders[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, o := range f.orders {
		clone := *o
		list = append(list, &clone)
	}
	return list, nil
}

func (f *fakeOrderRepo) PurgeStale(_ context.Context, placedBefore time.Time) (int64, error) {
	var purged int64
	for id, o := range f.orders {
		if o.Status == domain.StatusPending && o.PlacedAt.Before(placedBefore) {
			delete(f.orders, id)
			purged++
		}
	}
	return purged, nil
}

type stockEntry struct {
	quantity int32
	price    float64
}

type fakeInventory struct {
	stock    map[int64]*stockEntry
	reserves int
	releases int
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{stock: map[int64]*stockEntry{}}
}

func (f *fakeInventory) add(productID int64, quantity int32, price float64) {
	f.stock[productID] = &stockEntry{quantity: quantity, price: price}
}

func (f *fakeInventory) Reserve(_ context.Context, productID int64, quantity int32) (float64, error) {
	entry, ok := f.stock[productID]
	if !ok {
		return 0, ports.ErrNotFound
	}
	if entry.quantity < quantity {
		return 0, ports.ErrInsufficientStock
	}
	entry.quantity -= quantity
	f.reserves++
	return entry.price, nil
}

func (f *fakeInventory) Release(_ context.Context, productID int64, quantity int32) error {
	entry, ok := f.stock[productID]
	if !ok {
		return ports.ErrNotFound
	}
	entry.quantity += quantity
	f.releases++
	return nil
}

type fakeNotifier struct {
	confirmed []int64
	shipped   []int64
	cancelled []int64
	fail      error
}

func (f *fakeNotifier) OrderConfirmed(_ context.Context, order *domain.Order) error {
	f.confirmed = append(f.confirmed, order.ID)
	return f.fail
}

func (f *fakeNotifier) OrderShipped(_ context.Context, order *domain.Order) error {
	f.shipped = append(f.shipped, order.ID)
	return f.fail
}

func (f *fakeNotifier) OrderCancelled(_ context.Context, order *domain.Order) error {
	f.cancelled = append(f.cancelled, order.ID)
	return f.fail
}

func newTestOrder(t *testing.T, items ...domain.OrderItem) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, "customer@example.com", items)
	require.NoError(t, err)
	return order
}

func TestPlaceOrder_ReservesStockAndConfirms(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 19.99)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 2})
	saved, err := svc.PlaceOrder(context.Background(), order)

	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, saved.Status)
	require.Equal(t, int32(3), inventory.stock[1].quantity)
	require.InDelta(t, 39.98, saved.TotalAmount, 1e-9)
	require.Equal(t, []int64{saved.ID}, notifier.confirmed)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 19.99)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 10})
	_, err := svc.PlaceOrder(context.Background(), order)

	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, int32(5), inventory.stock[1].quantity)
	require.Empty(t, repo.orders)
	require.Empty(t, notifier.confirmed)
}

func TestPlaceOrder_PartialReservationIsReleased(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	inventory.add(2, 1, 4)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t,
		domain.OrderItem{ProductID: 1, Quantity: 2},
		domain.OrderItem{ProductID: 2, Quantity: 3},
	)
	_, err := svc.PlaceOrder(context.Background(), order)

	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, int32(5), inventory.stock[1].quantity)
	require.Equal(t, int32(1), inventory.stock[2].quantity)
	require.Empty(t, repo.orders)
	require.Empty(t, notifier.confirmed)
}

func TestPlaceOrder_PersistenceFailureReleasesStock(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failSave = errors.New("connection reset")
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 2})
	_, err := svc.PlaceOrder(context.Background(), order)

	require.Error(t, err)
	require.Equal(t, int32(5), inventory.stock[1].quantity)
	require.Empty(t, notifier.confirmed)
}

func TestPlaceOrder_SnapshotsUnitPrice(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 7.50)
	svc := NewService(repo, inventory, &fakeNotifier{})

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 2})
	saved, err := svc.PlaceOrder(context.Background(), order)

	require.NoError(t, err)
	require.InDelta(t, 7.50, saved.Items[0].UnitPrice, 1e-9)
	require.InDelta(t, 15.0, saved.TotalAmount, 1e-9)
}

func TestPlaceOrder_EmptyItems(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), newFakeInventory(), &fakeNotifier{})

	_, err := svc.PlaceOrder(context.Background(), &domain.Order{ID: 1, CustomerEmail: "customer@example.com"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPlaceOrder_NotificationFailureDoesNotFailPlacement(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	notifier := &fakeNotifier{fail: errors.New("gateway timeout")}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 1})
	saved, err := svc.PlaceOrder(context.Background(), order)

	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, saved.Status)
	require.Len(t, notifier.confirmed, 1)
}

func TestShipOrder_MissingOrder(t *testing.T) {
	notifier := &fakeNotifier{}
	svc := NewService(newFakeOrderRepo(), newFakeInventory(), notifier)

	_, err := svc.ShipOrder(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrNotFound)
	require.Empty(t, notifier.shipped)
}

func TestShipOrder_RequiresConfirmedState(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &fakeNotifier{}
	svc := NewService(repo, newFakeInventory(), notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 1, UnitPrice: 2})
	_, err := repo.Save(context.Background(), order)
	require.NoError(t, err)

	_, err = svc.ShipOrder(context.Background(), order.ID)
	require.ErrorIs(t, err, ErrInvalidState)
	require.Empty(t, notifier.shipped)
}

func TestShipOrder_ConfirmedOrderShipsAndNotifiesOnce(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	order := newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 1})
	placed, err := svc.PlaceOrder(context.Background(), order)
	require.NoError(t, err)

	shipped, err := svc.ShipOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, shipped.Status)
	require.Equal(t, []int64{placed.ID}, notifier.shipped)
}

func TestDeliverOrder_RequiresShippedState(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	svc := NewService(repo, inventory, &fakeNotifier{})

	placed, err := svc.PlaceOrder(context.Background(), newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)

	_, err = svc.DeliverOrder(context.Background(), placed.ID)
	require.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.ShipOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	delivered, err := svc.DeliverOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDelivered, delivered.Status)
}

func TestCancelOrder_ConfirmedOrderRestocks(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	notifier := &fakeNotifier{}
	svc := NewService(repo, inventory, notifier)

	placed, err := svc.PlaceOrder(context.Background(), newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 2}))
	require.NoError(t, err)
	require.Equal(t, int32(3), inventory.stock[1].quantity)

	cancelled, err := svc.CancelOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.Equal(t, int32(5), inventory.stock[1].quantity)
	require.Equal(t, []int64{placed.ID}, notifier.cancelled)
}

func TestCancelOrder_DeliveredOrderRejected(t *testing.T) {
	repo := newFakeOrderRepo()
	inventory := newFakeInventory()
	inventory.add(1, 5, 10)
	svc := NewService(repo, inventory, &fakeNotifier{})

	placed, err := svc.PlaceOrder(context.Background(), newTestOrder(t, domain.OrderItem{ProductID: 1, Quantity: 1}))
	require.NoError(t, err)
	_, err = svc.ShipOrder(context.Background(), placed.ID)
	require.NoError(t, err)
	_, err = svc.DeliverOrder(context.Background(), placed.ID)
	require.NoError(t, err)

	_, err = svc.CancelOrder(context.Background(), placed.ID)
	require.ErrorIs(t, err, ErrInvalidState)
}
