package query

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// ListProductsQuery represents the query to list catalog products.
type ListProductsQuery struct {
	Limit    int
	Offset   int
	Category string // Optional: filter by category
}

// ListProductsHandler handles the list products query.
type ListProductsHandler struct {
	repo domain.CatalogRepository
}

// NewListProductsHandler creates a new list products handler.
func NewListProductsHandler(repo domain.CatalogRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query.
func (h *ListProductsHandler) Handle(q ListProductsQuery) ([]domain.Product, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	var (
		products []domain.Product
		err      error
	)
	if q.Category != "" {
		products, err = h.repo.FindByCategory(q.Category, q.Limit, q.Offset)
	} else {
		products, err = h.repo.FindAll(q.Limit, q.Offset)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}
