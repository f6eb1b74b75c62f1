package service

import (
	"github.com/Bange254/Bttshoes/internal/domain/product/model"
	"github.com/Bange254/Bttshoes/internal/domain/product/repository"
	"github.com/Bange254/Bttshoes/pkg/utils"
)

type ProductService interface {
	CreateProduct(p *model.Product) error
	GetProduct(id string) (*model.Product, error)
	GetProducts(filter repository.ListFilter, page, limit int) ([]model.Product, int64, error)
	GetWholesaleProducts(category, brand string, page, limit int) ([]model.Product, int64, error)
	PriceFor(p *model.Product, quantity int, wholesale bool) float64
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) ProductService {
	return &productService{repo: repo}
}

func (s *productService) CreateProduct(p *model.Product) error {
	if p.SKU == "" {
		p.SKU = utils.GenerateSKU(p.Name, p.Category)
	}
	if p.Status == "" {
		p.Status = model.StatusActive
	}
	return s.repo.Create(p)
}

func (s *productService) GetProduct(id string) (*model.Product, error) {
	return s.repo.GetByID(id)
}

func (s *productService) GetProducts(filter repository.ListFilter, page, limit int) ([]model.Product, int64, error) {
	pg := utils.Pagination{Page: page, Limit: limit}
	offset, lim := pg.GetPageOffset()
	return s.repo.List(filter, offset, lim)
}

func (s *productService) GetWholesaleProducts(category, brand string, page, limit int) ([]model.Product, int64, error) {
	filter := repository.ListFilter{
		Category:      category,
		Brand:         brand,
		WholesaleOnly: true,
	}
	pg := utils.Pagination{Page: page, Limit: limit}
	offset, lim := pg.GetPageOffset()
	return s.repo.List(filter, offset, lim)
}

// PriceFor resolves the unit price for a line item. Wholesale orders
// get tier pricing; retail always pays list price.
func (s *productService) PriceFor(p *model.Product, quantity int, wholesale bool) float64 {
	if wholesale {
		return p.WholesalePrice(quantity)
	}
	return p.Price
}
