package order

import (
	couponRepo "github.com/Bange254/Bttshoes/internal/domain/coupon/repository"
	couponService "github.com/Bange254/Bttshoes/internal/domain/coupon/service"
	"github.com/Bange254/Bttshoes/internal/domain/order/handler"
	"github.com/Bange254/Bttshoes/internal/domain/order/repository"
	"github.com/Bange254/Bttshoes/internal/domain/order/service"
	productRepo "github.com/Bange254/Bttshoes/internal/domain/product/repository"
	productService "github.com/Bange254/Bttshoes/internal/domain/product/service"
	"github.com/Bange254/Bttshoes/internal/pkg/middleware"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
)

// OrderModule wires checkout and order lifecycle.
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	return 25
}

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewOrderRepository(ctx.DB)
	products := productService.NewProductService(productRepo.NewProductRepository(ctx.DB))
	// checkout only redeems, so no claim workers are spun up here
	coupons := couponService.NewRedeemer(couponRepo.NewCouponRepository(ctx.DB))

	svc := service.NewOrderService(repo, products, coupons)
	h := handler.NewOrderHandler(svc)

	secret := ctx.Cfg.JWT.Secret

	g := ctx.Router.Group("/api/orders")
	{
		// checkout accepts guests, so auth is optional
		g.POST("", middleware.OptionalAuthMiddleware(secret), h.Checkout)
		g.GET("/user", middleware.AuthMiddleware(secret), h.ListMine)
		g.GET("/track", h.Track)
	}

	admin := ctx.Router.Group("/api/admin/orders")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminMiddleware())
	{
		admin.PATCH("/:orderNumber", h.UpdateStatus)
	}

	return nil
}
