package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pixelpour/storefront/internal/review/domain"
)

// AddReviewCommand represents the command to post a product review.
type AddReviewCommand struct {
	ProductID int
	Name      string
	Rating    int
	Comment   string
}

// AddReviewHandler handles posting reviews.
type AddReviewHandler struct {
	repo domain.ReviewRepository
}

// NewAddReviewHandler creates a new add review handler.
func NewAddReviewHandler(repo domain.ReviewRepository) *AddReviewHandler {
	return &AddReviewHandler{repo: repo}
}

// Handle executes the add review command. Invalid input is rejected before
// anything reaches storage.
func (h *AddReviewHandler) Handle(ctx context.Context, cmd AddReviewCommand) (*domain.Review, error) {
	if cmd.ProductID <= 0 {
		return nil, fmt.Errorf("invalid product id")
	}
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(cmd.Comment) == "" {
		return nil, fmt.Errorf("comment is required")
	}

	review := domain.Review{
		ID:        uuid.New().String(),
		ProductID: cmd.ProductID,
		Name:      strings.TrimSpace(cmd.Name),
		Rating:    cmd.Rating,
		Comment:   strings.TrimSpace(cmd.Comment),
		CreatedAt: time.Now(),
	}

	if err := h.repo.Append(ctx, review); err != nil {
		return nil, err
	}

	return &review, nil
}
