package command

import (
	"context"
	"fmt"

	cartdomain "github.com/pixelpour/storefront/internal/cart/domain"
	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	"github.com/pixelpour/storefront/internal/notify"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/kafka"
	"github.com/pixelpour/storefront/pkg/logger"
)

// AddItemCommand represents the command to add a product to the cart. The
// product record comes from the catalog, resolved by the caller.
type AddItemCommand struct {
	UserID   string
	Product  catalogdomain.Product
	Quantity int // 0 means 1
}

// AddItemHandler handles the add-to-cart command.
type AddItemHandler struct {
	repo     cartdomain.CartRepository
	gate     Gate
	notifier notify.Notifier
	events   EventPublisher
}

// NewAddItemHandler creates a new add item handler.
func NewAddItemHandler(repo cartdomain.CartRepository, gate Gate, notifier notify.Notifier, events EventPublisher) *AddItemHandler {
	return &AddItemHandler{repo: repo, gate: gate, notifier: notifier, events: events}
}

// Handle executes the add item command. Without an authenticated session
// nothing is mutated: the shopper gets a login prompt and ErrLoginRequired
// back. An existing line item for the product has its quantity increased;
// otherwise a new line item is appended.
func (h *AddItemHandler) Handle(ctx context.Context, cmd AddItemCommand) (*cartdomain.Cart, error) {
	if !h.gate.Authenticated(cmd.UserID) {
		h.notifier.Error(cmd.UserID, "Please login to add items to your cart")
		return nil, sessiondomain.ErrLoginRequired
	}

	quantity := cmd.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}

	cart, err := h.repo.Load(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	if i := cart.Find(cmd.Product.ID); i >= 0 {
		cart.Items[i].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, cartdomain.LineItem{
			ProductID: cmd.Product.ID,
			Name:      cmd.Product.Name,
			Price:     cmd.Product.Price,
			Image:     cmd.Product.Image,
			Quantity:  quantity,
		})
	}

	if err := h.repo.Save(ctx, cart); err != nil {
		return nil, err
	}

	h.notifier.Success(cmd.UserID, fmt.Sprintf("Added %q to cart", cmd.Product.Name))
	h.publishUpdated(ctx, cmd.UserID, cart)

	return cart, nil
}

func (h *AddItemHandler) publishUpdated(ctx context.Context, userID string, cart *cartdomain.Cart) {
	if h.events == nil {
		return
	}

	event := kafka.CartUpdatedEvent{
		UserID:     userID,
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
	if err := h.events.PublishCartUpdated(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Str("user_id", userID).Msg("Failed to publish cart update")
	}
}
