package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pixelpour/storefront/internal/favorites/domain"
	"github.com/pixelpour/storefront/pkg/kvstore"
	"github.com/pixelpour/storefront/pkg/logger"
)

// KVFavoritesRepository keeps each shopper's favorites in memory and mirrors
// every save to the key-value store under "favorites:<userID>".
type KVFavoritesRepository struct {
	mu    sync.Mutex
	store kvstore.Store
	sets  map[string]*domain.Favorites
}

// NewKVFavoritesRepository creates a repository over the given store.
func NewKVFavoritesRepository(store kvstore.Store) *KVFavoritesRepository {
	return &KVFavoritesRepository{
		store: store,
		sets:  make(map[string]*domain.Favorites),
	}
}

func favoritesKey(userID string) string {
	return fmt.Sprintf("favorites:%s", userID)
}

func (r *KVFavoritesRepository) Load(ctx context.Context, userID string) (*domain.Favorites, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if favorites, ok := r.sets[userID]; ok {
		return copyFavorites(favorites), nil
	}

	favorites := &domain.Favorites{UserID: userID}

	data, err := r.store.Get(ctx, favoritesKey(userID))
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		// Nothing saved yet.
	case err != nil:
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	default:
		if err := json.Unmarshal(data, &favorites.Items); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("user_id", userID).
				Msg("Stored favorites are unreadable, starting empty")
			favorites.Items = nil
		}
	}

	r.sets[userID] = copyFavorites(favorites)
	return favorites, nil
}

func (r *KVFavoritesRepository) Save(ctx context.Context, favorites *domain.Favorites) error {
	data, err := json.Marshal(favorites.Items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sets[favorites.UserID] = copyFavorites(favorites)

	if err := r.store.Set(ctx, favoritesKey(favorites.UserID), data); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}

// Forget drops the in-memory set. The stored snapshot stays under the user's
// key and reappears when they log back in.
func (r *KVFavoritesRepository) Forget(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, userID)
}

// SessionStarted implements session.Listener.
func (r *KVFavoritesRepository) SessionStarted(userID string) {
	r.Forget(userID)
}

// SessionEnded implements session.Listener.
func (r *KVFavoritesRepository) SessionEnded(userID string) {
	r.Forget(userID)
}

func copyFavorites(favorites *domain.Favorites) *domain.Favorites {
	out := &domain.Favorites{UserID: favorites.UserID}
	if favorites.Items != nil {
		out.Items = make([]domain.Favorite, len(favorites.Items))
		copy(out.Items, favorites.Items)
	}
	return out
}
