package handler

import (
	"net/http"

	"github.com/Bange254/Bttshoes/internal/domain/product/model"
	"github.com/Bange254/Bttshoes/internal/domain/product/repository"
	"github.com/Bange254/Bttshoes/internal/domain/product/service"
	"github.com/Bange254/Bttshoes/pkg/response"
	"github.com/Bange254/Bttshoes/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

type listQuery struct {
	utils.Pagination
	Category string `form:"category"`
	Brand    string `form:"brand"`
}

// List returns the active catalog with optional category/brand filters.
func (h *ProductHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	filter := repository.ListFilter{Category: q.Category, Brand: q.Brand}
	products, total, err := h.service.GetProducts(filter, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: products, Total: total, Page: q.Page, Limit: q.Limit})
}

// Get returns a single product.
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.GetProduct(c.Param("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

// ListWholesale returns the wholesale catalog. Requires authentication.
func (h *ProductHandler) ListWholesale(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	products, total, err := h.service.GetWholesaleProducts(q.Category, q.Brand, q.Page, q.Limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: products, Total: total, Page: q.Page, Limit: q.Limit})
}

type createProductInput struct {
	Name             string                `json:"name" binding:"required"`
	Description      string                `json:"description"`
	ShortDescription string                `json:"shortDescription"`
	Price            float64               `json:"price" binding:"required,gt=0"`
	Category         string                `json:"category" binding:"required"`
	Subcategory      string                `json:"subcategory"`
	Brand            string                `json:"brand" binding:"required"`
	Images           []string              `json:"images"`
	Sizes            []string              `json:"sizes"`
	Colors           []string              `json:"colors"`
	Tags             []string              `json:"tags"`
	WholesaleTiers   []model.WholesaleTier `json:"wholesaleTiers"`
}

// Create adds a catalog entry. Admin only.
func (h *ProductHandler) Create(c *gin.Context) {
	var input createProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	product := &model.Product{
		Name:             input.Name,
		Description:      input.Description,
		ShortDescription: input.ShortDescription,
		Price:            input.Price,
		Category:         input.Category,
		Subcategory:      input.Subcategory,
		Brand:            input.Brand,
		Images:           input.Images,
		Sizes:            input.Sizes,
		Colors:           input.Colors,
		Tags:             input.Tags,
		WholesaleTiers:   input.WholesaleTiers,
	}

	if err := h.service.CreateProduct(product); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, product)
}
