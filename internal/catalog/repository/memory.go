package repository

import (
	"sort"
	"strings"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// MemoryCatalogRepository serves the catalog from memory, the default when no
// database is configured. The product list is fixed at construction.
type MemoryCatalogRepository struct {
	products []domain.Product
	byID     map[int]domain.Product
}

// NewMemoryCatalogRepository creates a repository over the given products,
// preserving their order.
func NewMemoryCatalogRepository(products []domain.Product) *MemoryCatalogRepository {
	byID := make(map[int]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &MemoryCatalogRepository{products: products, byID: byID}
}

func (r *MemoryCatalogRepository) FindByID(id int) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryCatalogRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	return paginate(r.products, limit, offset), nil
}

func (r *MemoryCatalogRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var matched []domain.Product
	for _, p := range r.products {
		if strings.EqualFold(p.Category, category) {
			matched = append(matched, p)
		}
	}
	return paginate(matched, limit, offset), nil
}

func (r *MemoryCatalogRepository) Search(q string) ([]domain.Product, error) {
	needle := strings.ToLower(strings.TrimSpace(q))
	if needle == "" {
		return nil, nil
	}

	var matched []domain.Product
	for _, p := range r.products {
		haystack := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if strings.Contains(haystack, needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (r *MemoryCatalogRepository) Categories() ([]string, error) {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range r.products {
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *MemoryCatalogRepository) Count() (int64, error) {
	return int64(len(r.products)), nil
}

func paginate(products []domain.Product, limit, offset int) []domain.Product {
	if offset >= len(products) {
		return nil
	}
	end := len(products)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return products[offset:end]
}
