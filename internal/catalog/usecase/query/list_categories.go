package query

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// ListCategoriesQuery represents the query for the distinct catalog categories.
type ListCategoriesQuery struct{}

// ListCategoriesHandler handles the list categories query.
type ListCategoriesHandler struct {
	repo domain.CatalogRepository
}

// NewListCategoriesHandler creates a new list categories handler.
func NewListCategoriesHandler(repo domain.CatalogRepository) *ListCategoriesHandler {
	return &ListCategoriesHandler{repo: repo}
}

// Handle executes the list categories query.
func (h *ListCategoriesHandler) Handle(ListCategoriesQuery) ([]string, error) {
	categories, err := h.repo.Categories()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}
