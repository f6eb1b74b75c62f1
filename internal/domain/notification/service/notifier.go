package service

import (
	"github.com/Bange254/Bttshoes/internal/domain/notification/model"
	"github.com/Bange254/Bttshoes/internal/domain/notification/repository"
	orderModel "github.com/Bange254/Bttshoes/internal/domain/order/model"
	"github.com/Bange254/Bttshoes/internal/pkg/config"
)

// Notifier queues transactional email. Enqueueing is a single insert
// into the outbox table; delivery happens later in the dispatcher.
type Notifier interface {
	EnqueueOrderConfirmation(order *orderModel.Order) error
	EnqueueAdminNewOrder(order *orderModel.Order) error
}

type notifier struct {
	repo       repository.OutboxRepository
	adminEmail string
}

func NewNotifier(repo repository.OutboxRepository, cfg config.EmailConfig) Notifier {
	return &notifier{
		repo:       repo,
		adminEmail: cfg.AdminEmail,
	}
}

func (n *notifier) EnqueueOrderConfirmation(order *orderModel.Order) error {
	subject, html := renderOrderConfirmation(order)
	return n.repo.Create(&model.EmailOutbox{
		Kind:      model.KindOrderConfirmation,
		Recipient: order.Email,
		Subject:   subject,
		Body:      html,
		Status:    model.StatusPending,
	})
}

func (n *notifier) EnqueueAdminNewOrder(order *orderModel.Order) error {
	subject, html := renderAdminNotification(order)
	return n.repo.Create(&model.EmailOutbox{
		Kind:      model.KindAdminNewOrder,
		Recipient: n.adminEmail,
		Subject:   subject,
		Body:      html,
		Status:    model.StatusPending,
	})
}
