package domain

import (
	"context"
	"time"
)

// Review is one shopper review of a product. Reviews are append-only: once
// posted they are never edited or removed.
type Review struct {
	ID        string    `json:"id"`
	ProductID int       `json:"product_id"`
	Name      string    `json:"name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is the derived rating aggregate for a product. Never stored; always
// recomputed from the review list.
type Summary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// Summarize computes the rating aggregate for a set of reviews.
func Summarize(reviews []Review) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}

	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return Summary{
		Average: float64(total) / float64(len(reviews)),
		Count:   len(reviews),
	}
}

// ReviewRepository stores reviews per product.
type ReviewRepository interface {
	ListByProduct(ctx context.Context, productID int) ([]Review, error)
	Append(ctx context.Context, review Review) error
}
