package query

import (
	"context"

	"github.com/pixelpour/storefront/internal/favorites/domain"
)

// IsFavoriteQuery represents the pure membership query: is this product in
// the shopper's favorites?
type IsFavoriteQuery struct {
	UserID    string
	ProductID int
}

// IsFavoriteHandler handles the membership query.
type IsFavoriteHandler struct {
	repo domain.FavoritesRepository
}

// NewIsFavoriteHandler creates a new is favorite handler.
func NewIsFavoriteHandler(repo domain.FavoritesRepository) *IsFavoriteHandler {
	return &IsFavoriteHandler{repo: repo}
}

// Handle executes the membership query. No side effects beyond the lazy load.
func (h *IsFavoriteHandler) Handle(ctx context.Context, q IsFavoriteQuery) (bool, error) {
	favorites, err := h.repo.Load(ctx, q.UserID)
	if err != nil {
		return false, err
	}

	return favorites.Contains(q.ProductID), nil
}
