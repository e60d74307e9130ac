package query

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// SearchProductsQuery represents a free-text catalog search.
type SearchProductsQuery struct {
	Q string
}

// SearchProductsHandler handles the search products query.
type SearchProductsHandler struct {
	repo domain.CatalogRepository
}

// NewSearchProductsHandler creates a new search products handler.
func NewSearchProductsHandler(repo domain.CatalogRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search. An empty query matches nothing.
func (h *SearchProductsHandler) Handle(q SearchProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.Search(q.Q)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	return products, nil
}
