package user

import (
	"github.com/Bange254/Bttshoes/internal/domain/user/handler"
	"github.com/Bange254/Bttshoes/internal/domain/user/repository"
	"github.com/Bange254/Bttshoes/internal/domain/user/service"
	"github.com/Bange254/Bttshoes/internal/pkg/middleware"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
)

// UserModule wires accounts and authentication.
type UserModule struct{}

func init() {
	registry.Register(&UserModule{})
}

func (m *UserModule) Name() string {
	return "user"
}

func (m *UserModule) Priority() int {
	return 10
}

func (m *UserModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewUserRepository(ctx.DB)
	svc := service.NewUserService(repo, ctx.Cfg.JWT.Secret, ctx.Cfg.JWT.Expire)
	h := handler.NewUserHandler(svc)

	g := ctx.Router.Group("/api/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)

	ctx.Router.GET("/api/profile", middleware.AuthMiddleware(ctx.Cfg.JWT.Secret), h.Profile)

	return nil
}
