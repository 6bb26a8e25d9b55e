package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/Apurer/go-order-api-server/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-order-api-server/internal/domains/catalog/ports"
	"github.com/Apurer/go-order-api-server/internal/shared/projection"
)

const tracerName = "github.com/Apurer/go-order-api-server/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) AddProduct(ctx context.Context, product *catalogdomain.Product) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.AddProduct",
		trace.WithAttributes(attribute.Int64("product.id", product.ID), attribute.String("product.name", product.Name)))
	defer span.End()

	s.logInfo(ctx, "adding product", slog.Int64("product.id", product.ID), slog.String("product.name", product.Name))
	result, err := s.inner.AddProduct(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to add product", slog.Int64("product.id", product.ID))
	}
	s.metrics.recordAdded(ctx)
	s.logInfo(ctx, "product added", slog.Int64("product.id", result.Entity.ID))
	return result, nil
}

func (s *Service) GetProductByID(ctx context.Context, id int64) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProductByID", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProductByID(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) UpdateStock(ctx context.Context, id int64, quantity int32) (*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.UpdateStock",
		trace.WithAttributes(attribute.Int64("product.id", id), attribute.Int("stock.quantity", int(quantity))))
	defer span.End()

	s.logInfo(ctx, "updating stock", slog.Int64("product.id", id), slog.Int("stock.quantity", int(quantity)))
	result, err := s.inner.UpdateStock(ctx, id, quantity)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update stock", slog.Int64("product.id", id))
	}
	s.metrics.recordStockUpdated(ctx)
	s.logInfo(ctx, "stock updated", slog.Int64("product.id", id), slog.Int("stock.quantity", int(result.Entity.StockQuantity)))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
	return nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*projection.Projection[*catalogdomain.Product], error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts")
	defer span.End()

	result, err := s.inner.ListProducts(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products")
	}
	span.SetAttributes(attribute.Int("catalog.product.count", len(result)))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	productsAdded metric.Int64Counter
	stockUpdates  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsAdded, _ := m.Int64Counter("catalog.service.products_added", metric.WithDescription("Number of products added"))
	stockUpdates, _ := m.Int64Counter("catalog.service.stock_updates", metric.WithDescription("Number of absolute stock updates"))
	return serviceMetrics{productsAdded: productsAdded, stockUpdates: stockUpdates}
}

func (m serviceMetrics) recordAdded(ctx context.Context) {
	if m.productsAdded != nil {
		m.productsAdded.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordStockUpdated(ctx context.Context) {
	if m.stockUpdates != nil {
		m.stockUpdates.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
