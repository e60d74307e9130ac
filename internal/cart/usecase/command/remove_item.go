package command

import (
	"context"
	"fmt"

	"github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/internal/notify"
)

// RemoveItemCommand represents the command to remove a line item.
type RemoveItemCommand struct {
	UserID    string
	ProductID int
}

// RemoveItemHandler handles line item removal.
type RemoveItemHandler struct {
	repo     domain.CartRepository
	notifier notify.Notifier
}

// NewRemoveItemHandler creates a new remove item handler.
func NewRemoveItemHandler(repo domain.CartRepository, notifier notify.Notifier) *RemoveItemHandler {
	return &RemoveItemHandler{repo: repo, notifier: notifier}
}

// Handle executes the remove item command. Removing a product that is not in
// the cart is a silent no-op: no error, no notification.
func (h *RemoveItemHandler) Handle(ctx context.Context, cmd RemoveItemCommand) (*domain.Cart, error) {
	cart, err := h.repo.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(cmd.ProductID)
	if i < 0 {
		return cart, nil
	}

	removed := cart.Items[i]
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	h.notifier.Info(cmd.UserID, fmt.Sprintf("Removed %q from cart", removed.Name))
	return cart, nil
}
