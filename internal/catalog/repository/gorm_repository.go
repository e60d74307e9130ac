package repository

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pixelpour/storefront/internal/catalog/domain"
)

// GormCatalogRepository serves the catalog from Postgres.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM-backed catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AutoMigrate creates the products table.
func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// Seed upserts the startup product range. Safe to run on every boot.
func (r *GormCatalogRepository) Seed(products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&products).Error
}

func (r *GormCatalogRepository) FindByID(id int) (*domain.Product, error) {
	var product domain.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormCatalogRepository) FindAll(limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Order("id").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) FindByCategory(category string, limit, offset int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.Where("LOWER(category) = LOWER(?)", category).
		Order("id").Limit(limit).Offset(offset).Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) Search(q string) ([]domain.Product, error) {
	var products []domain.Product
	pattern := "%" + q + "%"
	err := r.db.Where(
		"name ILIKE ? OR description ILIKE ? OR category ILIKE ?",
		pattern, pattern, pattern,
	).Order("id").Find(&products).Error
	return products, err
}

func (r *GormCatalogRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&domain.Product{}).
		Distinct("category").Order("category").Pluck("category", &categories).Error
	return categories, err
}

func (r *GormCatalogRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.Product{}).Count(&count).Error
	return count, err
}
