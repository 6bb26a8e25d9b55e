package mapper

import (
	"time"

	catalogdomain "github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

// Product represents the transport-layer shape used by the HTTP handlers.
type Product struct {
	ID            int64      `json:"id,omitempty"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	StockQuantity int32      `json:"stockQuantity"`
	Tags          []string   `json:"tags,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}

// StockUpdate carries the absolute stock level for PUT stock requests.
type StockUpdate struct {
	StockQuantity int32 `json:"stockQuantity"`
}

// ToDomainProduct converts a transport product into the catalog domain model.
func ToDomainProduct(product Product) (*catalogdomain.Product, error) {
	domainProduct, err := catalogdomain.NewProduct(product.ID, product.Name, product.Price, product.StockQuantity)
	if err != nil {
		return nil, err
	}
	domainProduct.ReplaceTags(product.Tags)
	return domainProduct, nil
}

// FromProjection converts a product projection to the transport representation.
func FromProjection(proj *projection.Projection[*catalogdomain.Product]) Product {
	if proj == nil || proj.Entity == nil {
		return Product{}
	}
	product := Product{
		ID:            proj.Entity.ID,
		Name:          proj.Entity.Name,
		Price:         proj.Entity.Price,
		StockQuantity: proj.Entity.StockQuantity,
		Tags:          append([]string{}, proj.Entity.Tags...),
	}
	if !proj.Metadata.CreatedAt.IsZero() {
		createdAt := proj.Metadata.CreatedAt
		product.CreatedAt = &createdAt
	}
	if !proj.Metadata.UpdatedAt.IsZero() {
		updatedAt := proj.Metadata.UpdatedAt
		product.UpdatedAt = &updatedAt
	}
	return product
}

// FromProjectionList converts a list of product projections.
func FromProjectionList(projections []*projection.Projection[*catalogdomain.Product]) []Product {
	list := make([]Product, 0, len(projections))
	for _, proj := range projections {
		list = append(list, FromProjection(proj))
	}
	return list
}
