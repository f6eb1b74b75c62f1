package coupon

import (
	"github.com/Bange254/Bttshoes/internal/domain/coupon/handler"
	"github.com/Bange254/Bttshoes/internal/domain/coupon/repository"
	"github.com/Bange254/Bttshoes/internal/domain/coupon/service"
	"github.com/Bange254/Bttshoes/internal/pkg/middleware"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
)

// CouponModule wires discount coupons.
type CouponModule struct{}

func init() {
	registry.Register(&CouponModule{})
}

func (m *CouponModule) Name() string {
	return "coupon"
}

func (m *CouponModule) Priority() int {
	return 20
}

func (m *CouponModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewCouponRepository(ctx.DB)
	svc := service.NewCouponService(repo, ctx.Redis)
	h := handler.NewCouponHandler(svc)

	secret := ctx.Cfg.JWT.Secret

	g := ctx.Router.Group("/api/coupons")
	g.Use(middleware.AuthMiddleware(secret))
	{
		g.POST("/:id/claim", h.Claim)
	}

	admin := ctx.Router.Group("/api/admin/coupons")
	admin.Use(middleware.AuthMiddleware(secret), middleware.AdminMiddleware())
	{
		admin.POST("", h.Create)
	}

	return nil
}
