package command

import (
	"context"
	"fmt"

	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/internal/notify"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
)

// Gate reports whether a shopper currently holds an authenticated session.
// Satisfied by session.Manager.
type Gate interface {
	Authenticated(userID string) bool
}

// AddFavoriteCommand represents the command to save a product to favorites.
type AddFavoriteCommand struct {
	UserID  string
	Product catalogdomain.Product
}

// AddFavoriteHandler handles the add-to-favorites command.
type AddFavoriteHandler struct {
	repo     domain.FavoritesRepository
	gate     Gate
	notifier notify.Notifier
}

// NewAddFavoriteHandler creates a new add favorite handler.
func NewAddFavoriteHandler(repo domain.FavoritesRepository, gate Gate, notifier notify.Notifier) *AddFavoriteHandler {
	return &AddFavoriteHandler{repo: repo, gate: gate, notifier: notifier}
}

// Handle executes the add favorite command. It reports whether the product
// was newly added: saving an already-saved product is an idempotent no-op
// that returns false with a nil error, distinct from the unauthenticated
// case which returns ErrLoginRequired and mutates nothing.
func (h *AddFavoriteHandler) Handle(ctx context.Context, cmd AddFavoriteCommand) (bool, error) {
	if !h.gate.Authenticated(cmd.UserID) {
		h.notifier.Error(cmd.UserID, "Please login to add favorites")
		return false, sessiondomain.ErrLoginRequired
	}

	favorites, err := h.repo.Load(ctx, cmd.UserID)
	if err != nil {
		return false, err
	}

	if favorites.Contains(cmd.Product.ID) {
		h.notifier.Info(cmd.UserID, fmt.Sprintf("%q is already in your favorites", cmd.Product.Name))
		return false, nil
	}

	favorites.Items = append(favorites.Items, domain.Favorite{
		ProductID: cmd.Product.ID,
		Name:      cmd.Product.Name,
		Price:     cmd.Product.Price,
		Image:     cmd.Product.Image,
		Category:  cmd.Product.Category,
	})

	if err := h.repo.Save(ctx, favorites); err != nil {
		return false, err
	}

	h.notifier.Success(cmd.UserID, fmt.Sprintf("Added %q to favorites", cmd.Product.Name))
	return true, nil
}
