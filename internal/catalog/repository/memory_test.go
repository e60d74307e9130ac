package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

func TestSeedProducts(t *testing.T) {
	products := SeedProducts()
	require.Len(t, products, 8)

	// IDs are 1..8 and unique
	seen := make(map[int]bool)
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0.0)
		assert.NotEmpty(t, p.Category)
	}
}

func TestFindByID(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())

	p, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, "Azure Classic", p.Name)
	assert.Equal(t, 29.99, p.Price)

	_, err = repo.FindByID(999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestFindAll_Pagination(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())

	page, err := repo.FindAll(3, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, 1, page[0].ID)

	page, err = repo.FindAll(3, 6)
	require.NoError(t, err)
	require.Len(t, page, 2)

	page, err = repo.FindAll(3, 100)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestFindByCategory_CaseInsensitive(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())

	matched, err := repo.FindByCategory("classic", 50, 0)
	require.NoError(t, err)
	require.NotEmpty(t, matched)
	for _, p := range matched {
		assert.Equal(t, "Classic", p.Category)
	}
}

func TestSearch(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())

	matched, err := repo.Search("thermal")
	require.NoError(t, err)
	require.NotEmpty(t, matched)

	matched, err = repo.Search("")
	require.NoError(t, err)
	assert.Empty(t, matched)

	matched, err = repo.Search("no such bottle anywhere")
	require.NoError(t, err)
	assert.Empty(t, matched)
}

func TestCategories_SortedAndUnique(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())

	categories, err := repo.Categories()
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	seen := make(map[string]bool)
	for i, c := range categories {
		assert.False(t, seen[c])
		seen[c] = true
		if i > 0 {
			assert.Less(t, categories[i-1], c)
		}
	}
}

func TestCount(t *testing.T) {
	repo := NewMemoryCatalogRepository(SeedProducts())
	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 8, count)
}
