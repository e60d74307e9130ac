package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/internal/cart/repository"
	catalogdomain "github.com/pixelpour/storefront/internal/catalog/domain"
	sessiondomain "github.com/pixelpour/storefront/internal/session/domain"
	"github.com/pixelpour/storefront/kafka"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

type allowGate struct{ allowed bool }

func (g allowGate) Authenticated(string) bool { return g.allowed }

type recordingNotifier struct {
	successes []string
	infos     []string
	errors    []string
}

func (n *recordingNotifier) Success(_, message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Info(_, message string)    { n.infos = append(n.infos, message) }
func (n *recordingNotifier) Error(_, message string)   { n.errors = append(n.errors, message) }

type recordingPublisher struct {
	events []kafka.CartUpdatedEvent
}

func (p *recordingPublisher) PublishCartUpdated(_ context.Context, event kafka.CartUpdatedEvent) error {
	p.events = append(p.events, event)
	return nil
}

var bottle = catalogdomain.Product{
	ID:       1,
	Name:     "Azure Classic",
	Price:    29.99,
	Image:    "/images/bottle-azure.jpg",
	Category: "Classic",
}

var thermal = catalogdomain.Product{
	ID:       2,
	Name:     "Eco Thermal",
	Price:    34.99,
	Image:    "/images/bottle-eco.jpg",
	Category: "Thermal",
}

func TestAddItem_RequiresLogin(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewAddItemHandler(repo, allowGate{allowed: false}, notifier, nil)

	cart, err := handler.Handle(context.Background(), AddItemCommand{
		UserID:  "guest",
		Product: bottle,
	})

	require.ErrorIs(t, err, sessiondomain.ErrLoginRequired)
	assert.Nil(t, cart)
	require.Len(t, notifier.errors, 1)
	assert.Equal(t, "Please login to add items to your cart", notifier.errors[0])

	// Nothing was written
	stored, err := repo.Load(context.Background(), "guest")
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func TestAddItem_MergesExistingLineItem(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)

	ctx := context.Background()
	_, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle, Quantity: 2})
	require.NoError(t, err)

	cart, err := handler.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	// One line item, quantities merged, unit price unchanged
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.Equal(t, 29.99, cart.Items[0].Price)
	assert.Equal(t, 3, cart.TotalItems())
	assert.InDelta(t, 89.97, cart.TotalPrice(), 0.001)

	require.Len(t, notifier.successes, 2)
	assert.Equal(t, `Added "Azure Classic" to cart`, notifier.successes[0])
}

func TestAddItem_DefaultQuantityIsOne(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	handler := NewAddItemHandler(repo, allowGate{allowed: true}, &recordingNotifier{}, nil)

	cart, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u1", Product: thermal})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddItem_RejectsNegativeQuantity(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	handler := NewAddItemHandler(repo, allowGate{allowed: true}, &recordingNotifier{}, nil)

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u1", Product: bottle, Quantity: -1})
	require.Error(t, err)
}

func TestAddItem_PublishesCartUpdated(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	publisher := &recordingPublisher{}
	handler := NewAddItemHandler(repo, allowGate{allowed: true}, &recordingNotifier{}, publisher)

	_, err := handler.Handle(context.Background(), AddItemCommand{UserID: "u1", Product: bottle, Quantity: 2})
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "u1", publisher.events[0].UserID)
	assert.Equal(t, 2, publisher.events[0].TotalItems)
	assert.InDelta(t, 59.98, publisher.events[0].TotalPrice, 0.001)
}

func TestRemoveItem_AbsentProductIsSilentNoOp(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	handler := NewRemoveItemHandler(repo, notifier)

	cart, err := handler.Handle(context.Background(), RemoveItemCommand{UserID: "u1", ProductID: 99})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Empty(t, notifier.infos)
}

func TestRemoveItem_RemovesAndNotifies(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)
	remove := NewRemoveItemHandler(repo, notifier)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)
	_, err = add.Handle(ctx, AddItemCommand{UserID: "u1", Product: thermal})
	require.NoError(t, err)

	cart, err := remove.Handle(ctx, RemoveItemCommand{UserID: "u1", ProductID: bottle.ID})
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, thermal.ID, cart.Items[0].ProductID)
	require.Len(t, notifier.infos, 1)
	assert.Equal(t, `Removed "Azure Classic" from cart`, notifier.infos[0])
}

func TestUpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)
	update := NewUpdateQuantityHandler(repo, NewRemoveItemHandler(repo, notifier))

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle, Quantity: 2})
	require.NoError(t, err)

	cart, err := update.Handle(ctx, UpdateQuantityCommand{UserID: "u1", ProductID: bottle.ID, Quantity: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLineItem(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)
	update := NewUpdateQuantityHandler(repo, NewRemoveItemHandler(repo, notifier))

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	cart, err := update.Handle(ctx, UpdateQuantityCommand{UserID: "u1", ProductID: bottle.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	require.Len(t, notifier.infos, 1)
	assert.Equal(t, `Removed "Azure Classic" from cart`, notifier.infos[0])
}

func TestUpdateQuantity_AbsentProductIsSilentNoOp(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	update := NewUpdateQuantityHandler(repo, NewRemoveItemHandler(repo, &recordingNotifier{}))

	cart, err := update.Handle(context.Background(), UpdateQuantityCommand{UserID: "u1", ProductID: 42, Quantity: 3})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClearCart_EmptiesAndNotifies(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	notifier := &recordingNotifier{}
	add := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)
	clear := NewClearCartHandler(repo, notifier)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle})
	require.NoError(t, err)

	cart, err := clear.Handle(ctx, ClearCartCommand{UserID: "u1"})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Contains(t, notifier.infos, "Cart cleared")

	// Clearing an already-empty cart is fine
	_, err = clear.Handle(ctx, ClearCartCommand{UserID: "u1"})
	require.NoError(t, err)
}

func TestCart_SurvivesRepositoryRestart(t *testing.T) {
	store := kvstore.NewMemoryStore()
	notifier := &recordingNotifier{}

	repo := repository.NewKVCartRepository(store)
	add := NewAddItemHandler(repo, allowGate{allowed: true}, notifier, nil)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "u1", Product: bottle, Quantity: 2})
	require.NoError(t, err)

	// A fresh repository over the same store sees the persisted cart
	fresh := repository.NewKVCartRepository(store)
	cart, err := fresh.Load(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, bottle.ID, cart.Items[0].ProductID)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCart_IsolatedPerUser(t *testing.T) {
	repo := repository.NewKVCartRepository(kvstore.NewMemoryStore())
	add := NewAddItemHandler(repo, allowGate{allowed: true}, &recordingNotifier{}, nil)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddItemCommand{UserID: "alice", Product: bottle})
	require.NoError(t, err)

	other, err := repo.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, other.Items)
}

var _ cartdomain.CartRepository = (*repository.KVCartRepository)(nil)
