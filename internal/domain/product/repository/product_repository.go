package repository

import (
	"github.com/Bange254/Bttshoes/internal/domain/product/model"

	"gorm.io/gorm"
)

// ListFilter narrows catalog queries.
type ListFilter struct {
	Category      string
	Brand         string
	WholesaleOnly bool // BTT brand or products carrying wholesale tiers
}

type ProductRepository interface {
	Create(product *model.Product) error
	GetByID(id string) (*model.Product, error)
	GetByIDs(ids []string) ([]model.Product, error)
	List(filter ListFilter, offset, limit int) ([]model.Product, int64, error)
	Update(product *model.Product) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id string) (*model.Product, error) {
	var product model.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ids []string) ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) List(filter ListFilter, offset, limit int) ([]model.Product, int64, error) {
	query := r.db.Model(&model.Product{}).Where("status = ?", model.StatusActive)

	if filter.WholesaleOnly {
		query = query.Where("brand = ? OR (wholesale_tiers IS NOT NULL AND wholesale_tiers != 'null' AND wholesale_tiers != '[]')", model.WholesaleBrand)
	}
	if filter.Category != "" && filter.Category != "all" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []model.Product
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepository) Update(product *model.Product) error {
	return r.db.Save(product).Error
}
