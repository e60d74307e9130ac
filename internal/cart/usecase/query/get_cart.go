package query

import (
	"context"

	"github.com/pixelpour/storefront/internal/cart/domain"
)

// GetCartQuery represents the query for a shopper's cart snapshot.
type GetCartQuery struct {
	UserID string
}

// CartView is the cart snapshot handed to the presentation layer, totals
// included so callers never compute them independently.
type CartView struct {
	Items      []domain.LineItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice float64           `json:"total_price"`
}

// GetCartHandler handles the get cart query.
type GetCartHandler struct {
	repo domain.CartRepository
}

// NewGetCartHandler creates a new get cart handler.
func NewGetCartHandler(repo domain.CartRepository) *GetCartHandler {
	return &GetCartHandler{repo: repo}
}

// Handle executes the get cart query.
func (h *GetCartHandler) Handle(ctx context.Context, q GetCartQuery) (*CartView, error) {
	cart, err := h.repo.Load(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}

	return &CartView{
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}, nil
}
