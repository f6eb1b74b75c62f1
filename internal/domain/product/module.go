package product

import (
	"github.com/Bange254/Bttshoes/internal/domain/product/handler"
	"github.com/Bange254/Bttshoes/internal/domain/product/repository"
	"github.com/Bange254/Bttshoes/internal/domain/product/service"
	"github.com/Bange254/Bttshoes/internal/pkg/middleware"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
)

// ProductModule wires the catalog.
type ProductModule struct{}

func init() {
	registry.Register(&ProductModule{})
}

func (m *ProductModule) Name() string {
	return "product"
}

func (m *ProductModule) Priority() int {
	return 15
}

func (m *ProductModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewProductRepository(ctx.DB)
	svc := service.NewProductService(repo)
	h := handler.NewProductHandler(svc)

	setupRoutes(ctx, h)
	return nil
}

func setupRoutes(ctx *registry.ModuleContext, h *handler.ProductHandler) {
	secret := ctx.Cfg.JWT.Secret

	g := ctx.Router.Group("/api/products")
	g.GET("", h.List)
	g.GET("/:id", h.Get)

	// wholesale catalog requires a logged-in account
	ctx.Router.GET("/api/wholesale/products", middleware.AuthMiddleware(secret), h.ListWholesale)

	admin := ctx.Router.Group("/api/admin/products")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
	}
}
