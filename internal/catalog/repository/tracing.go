package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingCatalogRepository decorates a catalog repository with spans for the
// lookups the storefront performs per request.
type TracingCatalogRepository struct {
	domain.CatalogRepository
}

// NewTracingCatalogRepository wraps the given repository with tracing.
func NewTracingCatalogRepository(inner domain.CatalogRepository) *TracingCatalogRepository {
	return &TracingCatalogRepository{CatalogRepository: inner}
}

// FindByIDWithContext looks up a product under a span.
func (r *TracingCatalogRepository) FindByIDWithContext(ctx context.Context, id int) (*domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int("product.id", id)),
	)
	defer span.End()

	product, err := r.CatalogRepository.FindByID(id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.category", product.Category),
	)
	return product, nil
}

// SearchWithContext runs a catalog search under a span.
func (r *TracingCatalogRepository) SearchWithContext(ctx context.Context, q string) ([]domain.Product, error) {
	_, span := tracer.Start(ctx, "repository.Search",
		trace.WithAttributes(attribute.String("search.query", q)),
	)
	defer span.End()

	products, err := r.CatalogRepository.Search(q)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("search.results", len(products)))
	return products, nil
}
