package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type record struct {
	product   domain.Product
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory product persistence adapter. Stock movements are
// serialized by the mutex, which makes the conditional decrement atomic.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*record
	nextID   int64
	now      func() time.Time
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*record{}, now: time.Now}
}

// WithClock overrides the timestamp source, used by tests.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	now := r.now()
	existing, ok := r.products[clone.ID]
	rec := &record{product: clone, createdAt: now, updatedAt: now}
	if ok {
		rec.createdAt = existing.createdAt
	}
	r.products[clone.ID] = rec
	return r.project(rec), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return r.project(rec), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, rec := range r.products {
		list = append(list, r.project(rec))
	}
	return list, nil
}

func (r *Repository) ReserveStock(_ context.Context, id int64, quantity int32) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return 0, ports.ErrNotFound
	}
	if rec.product.StockQuantity < quantity {
		return 0, ports.ErrInsufficientStock
	}
	rec.product.StockQuantity -= quantity
	rec.updatedAt = r.now()
	return rec.product.Price, nil
}

func (r *Repository) ReleaseStock(_ context.Context, id int64, quantity int32) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return ports.ErrNotFound
	}
	rec.product.StockQuantity += quantity
	rec.updatedAt = r.now()
	return nil
}

func (r *Repository) UpdateStock(_ context.Context, id int64, quantity int32) (*projection.Projection[*domain.Product], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := rec.product.SetStock(quantity); err != nil {
		return nil, err
	}
	rec.updatedAt = r.now()
	return r.project(rec), nil
}

func (r *Repository) project(rec *record) *projection.Projection[*domain.Product] {
	clone := rec.product
	clone.Tags = append([]string{}, rec.product.Tags...)
	return &projection.Projection[*domain.Product]{
		Entity:   &clone,
		Metadata: projection.Metadata{CreatedAt: rec.createdAt, UpdatedAt: rec.updatedAt},
	}
}
