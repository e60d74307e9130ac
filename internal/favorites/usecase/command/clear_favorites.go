package command

import (
	"context"

	"github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/internal/notify"
)

// ClearFavoritesCommand represents the command to empty the favorites list.
type ClearFavoritesCommand struct {
	UserID string
}

// ClearFavoritesHandler handles favorites clearing.
type ClearFavoritesHandler struct {
	repo     domain.FavoritesRepository
	notifier notify.Notifier
}

// NewClearFavoritesHandler creates a new clear favorites handler.
func NewClearFavoritesHandler(repo domain.FavoritesRepository, notifier notify.Notifier) *ClearFavoritesHandler {
	return &ClearFavoritesHandler{repo: repo, notifier: notifier}
}

// Handle executes the clear favorites command.
func (h *ClearFavoritesHandler) Handle(ctx context.Context, cmd ClearFavoritesCommand) (*domain.Favorites, error) {
	favorites := &domain.Favorites{UserID: cmd.UserID}

	if err := h.repo.Save(ctx, favorites); err != nil {
		return nil, err
	}

	h.notifier.Info(cmd.UserID, "Favorites cleared")
	return favorites, nil
}
