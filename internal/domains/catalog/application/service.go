package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// AddProduct persists a new product aggregate.
func (s *Service) AddProduct(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetProductByID loads a single product aggregate.
func (s *Service) GetProductByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateStock replaces the absolute stock level of a product.
func (s *Service) UpdateStock(ctx context.Context, id int64, quantity int32) (*projection.Projection[*domain.Product], error) {
	if quantity < 0 {
		return nil, mapError(domain.ErrNegativeStock)
	}
	updated, err := s.repo.UpdateStock(ctx, id, quantity)
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// DeleteProduct removes a product from the catalog.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ListProducts exposes all products for inventory views or admin use cases.
func (s *Service) ListProducts(ctx context.Context) ([]*projection.Projection[*domain.Product], error) {
	return s.repo.List(ctx)
}

var _ ports.Service = (*Service)(nil)
