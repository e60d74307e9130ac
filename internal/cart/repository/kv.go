package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pixelpour/storefront/internal/cart/domain"
	"github.com/pixelpour/storefront/pkg/kvstore"
	"github.com/pixelpour/storefront/pkg/logger"
)

// KVCartRepository keeps each shopper's cart in memory and mirrors every save
// to the key-value store under "cart:<userID>", so carts survive restarts and
// stay isolated between accounts.
type KVCartRepository struct {
	mu    sync.Mutex
	store kvstore.Store
	carts map[string]*domain.Cart
}

// NewKVCartRepository creates a repository over the given store.
func NewKVCartRepository(store kvstore.Store) *KVCartRepository {
	return &KVCartRepository{
		store: store,
		carts: make(map[string]*domain.Cart),
	}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (r *KVCartRepository) Load(ctx context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart, ok := r.carts[userID]; ok {
		return copyCart(cart), nil
	}

	cart := &domain.Cart{UserID: userID}

	data, err := r.store.Get(ctx, cartKey(userID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		// First visit, start empty.
	case err != nil:
		return nil, fmt.Errorf("failed to load cart: %w", err)
	default:
		if err := json.Unmarshal(data, &cart.Items); err != nil {
			// Corrupted payload: proceed empty, the entry stays in
			// place until the next successful save overwrites it.
			logger.Logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("Stored cart is unreadable, starting empty")
			cart.Items = nil
		}
	}

	r.carts[userID] = copyCart(cart)
	return cart, nil
}

func (r *KVCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// In-memory state changes first; the storage mirror follows within the
	// same call, so storage is never newer than memory.
	r.carts[cart.UserID] = copyCart(cart)

	if err := r.store.Set(ctx, cartKey(cart.UserID), data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// Forget drops the in-memory cart. Used on session transitions; the stored
// snapshot is untouched and reloads on next access.
func (r *KVCartRepository) Forget(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
}

// SessionStarted implements session.Listener. Dropping any stale copy forces
// a fresh read of the user's own key on next access.
func (r *KVCartRepository) SessionStarted(userID string) {
	r.Forget(userID)
}

// SessionEnded implements session.Listener.
func (r *KVCartRepository) SessionEnded(userID string) {
	r.Forget(userID)
}

func copyCart(cart *domain.Cart) *domain.Cart {
	out := &domain.Cart{UserID: cart.UserID}
	if cart.Items != nil {
		out.Items = make([]domain.LineItem, len(cart.Items))
		copy(out.Items, cart.Items)
	}
	return out
}
