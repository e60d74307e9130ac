package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpour/storefront/internal/review/repository"
	"github.com/pixelpour/storefront/internal/review/usecase/query"
	"github.com/pixelpour/storefront/pkg/kvstore"
)

func TestAddReview_Valid(t *testing.T) {
	repo := repository.NewKVReviewRepository(kvstore.NewMemoryStore())
	handler := NewAddReviewHandler(repo)

	review, err := handler.Handle(context.Background(), AddReviewCommand{
		ProductID: 1,
		Name:      "  Ada  ",
		Rating:    5,
		Comment:   "Keeps water cold all day.",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 1, review.ProductID)
	assert.Equal(t, "Ada", review.Name)
	assert.Equal(t, 5, review.Rating)
	assert.False(t, review.CreatedAt.IsZero())
}

func TestAddReview_RejectsInvalidInput(t *testing.T) {
	repo := repository.NewKVReviewRepository(kvstore.NewMemoryStore())
	handler := NewAddReviewHandler(repo)
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  AddReviewCommand
	}{
		{"missing name", AddReviewCommand{ProductID: 1, Rating: 4, Comment: "Nice"}},
		{"missing comment", AddReviewCommand{ProductID: 1, Name: "Ada", Rating: 4}},
		{"rating too low", AddReviewCommand{ProductID: 1, Name: "Ada", Rating: 0, Comment: "Nice"}},
		{"rating too high", AddReviewCommand{ProductID: 1, Name: "Ada", Rating: 6, Comment: "Nice"}},
		{"bad product id", AddReviewCommand{ProductID: 0, Name: "Ada", Rating: 4, Comment: "Nice"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := handler.Handle(ctx, tc.cmd)
			assert.Error(t, err)

			// Nothing reached storage
			reviews, err := repo.ListByProduct(ctx, 1)
			require.NoError(t, err)
			assert.Empty(t, reviews)
		})
	}
}

func TestReviews_AppendOnlyAndSummarized(t *testing.T) {
	repo := repository.NewKVReviewRepository(kvstore.NewMemoryStore())
	add := NewAddReviewHandler(repo)
	list := query.NewListReviewsHandler(repo)

	ctx := context.Background()
	_, err := add.Handle(ctx, AddReviewCommand{ProductID: 2, Name: "Ada", Rating: 5, Comment: "Great bottle"})
	require.NoError(t, err)
	_, err = add.Handle(ctx, AddReviewCommand{ProductID: 2, Name: "Grace", Rating: 4, Comment: "Solid"})
	require.NoError(t, err)

	view, err := list.Handle(ctx, query.ListReviewsQuery{ProductID: 2})
	require.NoError(t, err)

	require.Len(t, view.Reviews, 2)
	assert.Equal(t, "Ada", view.Reviews[0].Name)
	assert.Equal(t, 2, view.Summary.Count)
	assert.InDelta(t, 4.5, view.Summary.Average, 0.001)
}

func TestReviews_EmptyProductHasZeroSummary(t *testing.T) {
	repo := repository.NewKVReviewRepository(kvstore.NewMemoryStore())
	list := query.NewListReviewsHandler(repo)

	view, err := list.Handle(context.Background(), query.ListReviewsQuery{ProductID: 7})
	require.NoError(t, err)
	assert.Empty(t, view.Reviews)
	assert.Zero(t, view.Summary.Count)
	assert.Zero(t, view.Summary.Average)
}
