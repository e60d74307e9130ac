package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/pixelpour/storefront/internal/review/domain"
	"github.com/pixelpour/storefront/pkg/kvstore"
	"github.com/pixelpour/storefront/pkg/logger"
)

// KVReviewRepository stores each product's reviews under "reviews:<productID>".
type KVReviewRepository struct {
	mu    sync.Mutex
	store kvstore.Store
}

// NewKVReviewRepository creates a repository over the given store.
func NewKVReviewRepository(store kvstore.Store) *KVReviewRepository {
	return &KVReviewRepository{store: store}
}

func reviewsKey(productID int) string {
	return fmt.Sprintf("reviews:%d", productID)
}

func (r *KVReviewRepository) ListByProduct(ctx context.Context, productID int) ([]domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx, productID)
}

func (r *KVReviewRepository) Append(ctx context.Context, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reviews, err := r.load(ctx, review.ProductID)
	if err != nil {
		return err
	}

	reviews = append(reviews, review)

	data, err := json.Marshal(reviews)
	if err != nil {
		return fmt.Errorf("failed to encode reviews: %w", err)
	}

	if err := r.store.Set(ctx, reviewsKey(review.ProductID), data); err != nil {
		return fmt.Errorf("failed to persist reviews: %w", err)
	}
	return nil
}

func (r *KVReviewRepository) load(ctx context.Context, productID int) ([]domain.Review, error) {
	data, err := r.store.Get(ctx, reviewsKey(productID))
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	var reviews []domain.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		logger.Logger.Warn().
			Err(err).
			Int("product_id", productID).
			Msg("Stored reviews are unreadable, starting empty")
		return nil, nil
	}
	return reviews, nil
}
