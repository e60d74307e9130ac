package command

import (
	"context"
	"fmt"

	"github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/internal/notify"
)

// RemoveFavoriteCommand represents the command to remove a saved product.
type RemoveFavoriteCommand struct {
	UserID    string
	ProductID int
}

// RemoveFavoriteHandler handles favorite removal.
type RemoveFavoriteHandler struct {
	repo     domain.FavoritesRepository
	notifier notify.Notifier
}

// NewRemoveFavoriteHandler creates a new remove favorite handler.
func NewRemoveFavoriteHandler(repo domain.FavoritesRepository, notifier notify.Notifier) *RemoveFavoriteHandler {
	return &RemoveFavoriteHandler{repo: repo, notifier: notifier}
}

// Handle executes the remove favorite command. Removing a product that is not
// saved is a silent no-op.
func (h *RemoveFavoriteHandler) Handle(ctx context.Context, cmd RemoveFavoriteCommand) (*domain.Favorites, error) {
	favorites, err := h.repo.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	i := favorites.Find(cmd.ProductID)
	if i < 0 {
		return favorites, nil
	}

	removed := favorites.Items[i]
	favorites.Items = append(favorites.Items[:i], favorites.Items[i+1:]...)

	if err := h.repo.Save(ctx, favorites); err != nil {
		return nil, err
	}

	h.notifier.Info(cmd.UserID, fmt.Sprintf("Removed %q from favorites", removed.Name))
	return favorites, nil
}
