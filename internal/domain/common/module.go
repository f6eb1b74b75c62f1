package common

import (
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
	"github.com/Bange254/Bttshoes/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommonModule exposes operational endpoints shared by every
// deployment: liveness and Prometheus metrics.
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

func (m *CommonModule) Priority() int {
	return 100
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	ctx.Router.GET("/health", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok", "env": ctx.Cfg.App.Env})
	})

	ctx.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return nil
}
