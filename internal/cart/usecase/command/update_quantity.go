package command

import (
	"context"

	"github.com/pixelpour/storefront/internal/cart/domain"
)

// UpdateQuantityCommand represents the command to set a line item's quantity
// to an absolute value.
type UpdateQuantityCommand struct {
	UserID    string
	ProductID int
	Quantity  int
}

// UpdateQuantityHandler handles quantity updates.
type UpdateQuantityHandler struct {
	repo   domain.CartRepository
	remove *RemoveItemHandler
}

// NewUpdateQuantityHandler creates a new update quantity handler.
func NewUpdateQuantityHandler(repo domain.CartRepository, remove *RemoveItemHandler) *UpdateQuantityHandler {
	return &UpdateQuantityHandler{repo: repo, remove: remove}
}

// Handle executes the update quantity command. A quantity of zero or less
// delegates to removal, keeping the quantity-at-least-1 invariant. Updating a
// product that is not in the cart is a silent no-op.
func (h *UpdateQuantityHandler) Handle(ctx context.Context, cmd UpdateQuantityCommand) (*domain.Cart, error) {
	if cmd.Quantity <= 0 {
		return h.remove.Handle(ctx, RemoveItemCommand{
			UserID:    cmd.UserID,
			ProductID: cmd.ProductID,
		})
	}

	cart, err := h.repo.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	i := cart.Find(cmd.ProductID)
	if i < 0 {
		return cart, nil
	}

	cart.Items[i].Quantity = cmd.Quantity

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
