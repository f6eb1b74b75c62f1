package payment

import (
	"strings"

	notifyRepo "github.com/Bange254/Bttshoes/internal/domain/notification/repository"
	notifyService "github.com/Bange254/Bttshoes/internal/domain/notification/service"
	orderRepo "github.com/Bange254/Bttshoes/internal/domain/order/repository"
	"github.com/Bange254/Bttshoes/internal/domain/payment/handler"
	"github.com/Bange254/Bttshoes/internal/domain/payment/service"
	"github.com/Bange254/Bttshoes/internal/domain/payment/strategy"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
	"github.com/Bange254/Bttshoes/pkg/logger"
)

// PaymentModule wires mobile-money payments.
type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

func (m *PaymentModule) Priority() int {
	return 30
}

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	// gateway selection happens once, here. The rest of the module only
	// sees the Gateway interface.
	var gateway strategy.Gateway
	if ctx.Cfg.Mpesa.ConsumerKey != "" {
		gateway = strategy.NewDarajaGateway(ctx.Cfg.Mpesa)
		logger.Log.Info("using live M-PESA gateway")
	} else {
		gateway = strategy.NewSimulatedGateway()
	}

	orders := orderRepo.NewOrderRepository(ctx.DB)
	notifier := notifyService.NewNotifier(notifyRepo.NewOutboxRepository(ctx.DB), ctx.Cfg.Email)

	callbackURL := strings.TrimRight(ctx.Cfg.App.BaseURL, "/") + "/api/payments/mpesa/callback"
	svc := service.NewPaymentService(gateway, orders, notifier, callbackURL)
	h := handler.NewPaymentHandler(svc)

	g := ctx.Router.Group("/api/payments")
	{
		g.POST("/mpesa/initiate", h.Initiate)
		g.POST("/mpesa/callback", h.Callback)
		g.GET("/mpesa/status/:checkoutRequestId", h.Status)
	}

	return nil
}
