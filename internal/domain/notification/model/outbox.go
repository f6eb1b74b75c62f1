package model

import (
	"time"

	baseModel "github.com/Bange254/Bttshoes/pkg/model"
)

// Outbox statuses.
const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Email kinds.
const (
	KindOrderConfirmation = "order_confirmation"
	KindAdminNewOrder     = "admin_new_order"
)

// EmailOutbox is a queued transactional email. The payment callback
// only inserts rows here; actual delivery happens in the dispatcher, so
// a mail-provider outage can never fail or roll back a payment
// transition.
type EmailOutbox struct {
	baseModel.BaseModel
	Kind      string     `gorm:"not null;index" json:"kind"`
	Recipient string     `gorm:"not null" json:"recipient"`
	Subject   string     `gorm:"not null" json:"subject"`
	Body      string     `gorm:"not null" json:"-"`
	Status    string     `gorm:"not null;default:'pending';index" json:"status"`
	Attempts  int        `gorm:"not null;default:0" json:"attempts"`
	LastError string     `json:"lastError,omitempty"`
	SentAt    *time.Time `json:"sentAt,omitempty"`
}
