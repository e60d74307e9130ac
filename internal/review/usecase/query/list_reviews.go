package query

import (
	"context"
	"fmt"

	"github.com/pixelpour/storefront/internal/review/domain"
)

// ListReviewsQuery represents the query for a product's reviews.
type ListReviewsQuery struct {
	ProductID int
}

// ReviewsView is the review list plus its derived rating summary.
type ReviewsView struct {
	Reviews []domain.Review `json:"reviews"`
	Summary domain.Summary  `json:"summary"`
}

// ListReviewsHandler handles the list reviews query.
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

// NewListReviewsHandler creates a new list reviews handler.
func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle executes the list reviews query.
func (h *ListReviewsHandler) Handle(ctx context.Context, q ListReviewsQuery) (*ReviewsView, error) {
	if q.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}

	reviews, err := h.repo.ListByProduct(ctx, q.ProductID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}

	return &ReviewsView{
		Reviews: reviews,
		Summary: domain.Summarize(reviews),
	}, nil
}
