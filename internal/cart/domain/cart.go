package domain

import "context"

// LineItem is one product's quantity entry within a cart. A cart holds at
// most one line item per product id, and a line item's quantity is always at
// least 1: a mutation that would drive it to zero removes the line instead.
type LineItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is a shopper's set of line items.
type Cart struct {
	UserID string     `json:"-"`
	Items  []LineItem `json:"items"`
}

// Find returns the index of the line item for productID, or -1.
func (c *Cart) Find(productID int) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// TotalItems is the sum of all line item quantities. Derived on every call,
// never stored, so it cannot drift from the items.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price times quantity across all line items.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CartRepository holds each shopper's cart in memory and mirrors every saved
// state to storage, keyed per user.
type CartRepository interface {
	// Load returns the user's cart, reading it from storage on first
	// access. A missing or unreadable stored payload yields an empty cart.
	Load(ctx context.Context, userID string) (*Cart, error)
	// Save replaces the in-memory cart and mirrors it to storage.
	Save(ctx context.Context, cart *Cart) error
	// Forget drops the in-memory copy only; stored state stays.
	Forget(userID string)
}
