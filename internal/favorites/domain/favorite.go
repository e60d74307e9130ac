package domain

import "context"

// Favorite is one saved product in a shopper's favorites list. A product id
// appears at most once per shopper.
type Favorite struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
}

// Favorites is a shopper's saved-product set, kept in insertion order.
type Favorites struct {
	UserID string     `json:"-"`
	Items  []Favorite `json:"items"`
}

// Find returns the index of the favorite for productID, or -1.
func (f *Favorites) Find(productID int) int {
	for i, item := range f.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// Contains reports whether productID is saved.
func (f *Favorites) Contains(productID int) bool {
	return f.Find(productID) >= 0
}

// FavoritesRepository holds each shopper's favorites in memory and mirrors
// saved state to storage under a per-user key, so two accounts on one
// deployment never share or clobber each other's list.
type FavoritesRepository interface {
	Load(ctx context.Context, userID string) (*Favorites, error)
	Save(ctx context.Context, favorites *Favorites) error
	// Forget drops the in-memory copy only; stored state stays.
	Forget(userID string)
}
