package notification

import (
	"context"

	"github.com/Bange254/Bttshoes/internal/domain/notification/repository"
	"github.com/Bange254/Bttshoes/internal/domain/notification/service"
	"github.com/Bange254/Bttshoes/internal/pkg/mailer"
	"github.com/Bange254/Bttshoes/internal/pkg/registry"
)

// NotificationModule wires the email outbox dispatcher. It registers
// no routes; other modules enqueue into the outbox table and the
// dispatcher started here drains it.
type NotificationModule struct{}

func init() {
	registry.Register(&NotificationModule{})
}

func (m *NotificationModule) Name() string {
	return "notification"
}

func (m *NotificationModule) Priority() int {
	return 40
}

func (m *NotificationModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewOutboxRepository(ctx.DB)

	var mail mailer.Mailer
	if ctx.Cfg.Email.APIKey != "" {
		mail = mailer.NewResendMailer(ctx.Cfg.Email)
	} else {
		mail = mailer.NewSimulatedMailer()
	}

	dispatcher := service.NewDispatcher(repo, mail)
	dispatcher.Start(context.Background())

	return nil
}
