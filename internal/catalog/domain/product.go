package domain

import "errors"

// ErrProductNotFound is returned when no product matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// Product represents a bottle in the PixelPour catalog. The catalog is
// reference data: loaded once at startup and never mutated afterwards.
type Product struct {
	ID          int     `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
	Image       string  `json:"image"`
	Category    string  `json:"category" gorm:"index"`
	IsNew       bool    `json:"isNew,omitempty"`
	Description string  `json:"description"`
}

// TableName specifies the table name.
func (Product) TableName() string {
	return "products"
}

// CatalogRepository defines read-only access to the product catalog.
type CatalogRepository interface {
	FindByID(id int) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByCategory(category string, limit, offset int) ([]Product, error)
	// Search matches the query as a case-insensitive substring of the
	// product name, description or category.
	Search(q string) ([]Product, error)
	Categories() ([]string, error)
	Count() (int64, error)
}
