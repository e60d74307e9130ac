package command

import (
	"context"

	"github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/internal/notify"
)

// ClearCartCommand represents the command to empty a shopper's cart.
type ClearCartCommand struct {
	UserID string
}

// ClearCartHandler handles cart clearing.
type ClearCartHandler struct {
	repo     domain.CartRepository
	notifier notify.Notifier
}

// NewClearCartHandler creates a new clear cart handler.
func NewClearCartHandler(repo domain.CartRepository, notifier notify.Notifier) *ClearCartHandler {
	return &ClearCartHandler{repo: repo, notifier: notifier}
}

// Handle executes the clear cart command. Clearing is unconditional; an
// already-empty cart clears again without complaint.
func (h *ClearCartHandler) Handle(ctx context.Context, cmd ClearCartCommand) (*domain.Cart, error) {
	cart := &domain.Cart{UserID: cmd.UserID}

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	h.notifier.Info(cmd.UserID, "Cart cleared")
	return cart, nil
}
