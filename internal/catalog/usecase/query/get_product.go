package query

import (
	"fmt"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by id.
type GetProductQuery struct {
	ID int
}

// GetProductHandler handles the get product query.
type GetProductHandler struct {
	repo domain.CatalogRepository
}

// NewGetProductHandler creates a new get product handler.
func NewGetProductHandler(repo domain.CatalogRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query.
func (h *GetProductHandler) Handle(q GetProductQuery) (*domain.Product, error) {
	if q.ID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	return h.repo.FindByID(q.ID)
}
