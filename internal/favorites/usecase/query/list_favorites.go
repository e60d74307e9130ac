package query

import (
	"context"

	"github.com/pixelpour/storefront/internal/favorites/domain"
)

// ListFavoritesQuery represents the query for a shopper's saved products.
type ListFavoritesQuery struct {
	UserID string
}

// FavoritesView is the favorites snapshot handed to the presentation layer.
type FavoritesView struct {
	Items []domain.Favorite `json:"items"`
	Count int               `json:"count"`
}

// ListFavoritesHandler handles the list favorites query.
type ListFavoritesHandler struct {
	repo domain.FavoritesRepository
}

// NewListFavoritesHandler creates a new list favorites handler.
func NewListFavoritesHandler(repo domain.FavoritesRepository) *ListFavoritesHandler {
	return &ListFavoritesHandler{repo: repo}
}

// Handle executes the list favorites query.
func (h *ListFavoritesHandler) Handle(ctx context.Context, q ListFavoritesQuery) (*FavoritesView, error) {
	favorites, err := h.repo.Load(ctx, q.UserID)
	if err != nil {
		return nil, err
	}

	items := favorites.Items
	if items == nil {
		items = []domain.Favorite{}
	}

	return &FavoritesView{Items: items, Count: len(items)}, nil
}
