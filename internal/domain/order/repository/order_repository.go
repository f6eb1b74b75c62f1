package repository

import (
	"errors"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/order/model"

	"gorm.io/gorm"
)

// ErrNotPending is returned by the conditional transitions when no
// order with a pending payment matched. A duplicate callback delivery
// lands here and becomes a no-op.
var ErrNotPending = errors.New("order is not awaiting payment")

type OrderRepository interface {
	Create(order *model.Order) error
	GetByOrderNumber(orderNumber string) (*model.Order, error)
	GetByCheckoutRequestID(checkoutRequestID string) (*model.Order, error)
	ListByUser(userID string, offset, limit int) ([]model.Order, int64, error)

	// AttachCheckoutRequest stores the gateway correlation id, only
	// while the payment is still pending.
	AttachCheckoutRequest(orderNumber, checkoutRequestID string) error

	// MarkPaid transitions pending->paid atomically: the update is
	// keyed on paymentStatus='pending' so concurrent or repeated
	// deliveries cannot reapply it.
	MarkPaid(checkoutRequestID string, details model.PaymentDetails) error

	// MarkFailed transitions pending->failed/cancelled under the same
	// condition.
	MarkFailed(checkoutRequestID string) error

	// UpdateStatus applies an administrative transition. paymentStatus
	// is only written when non-empty (refunds touch both fields).
	UpdateStatus(orderNumber, status, paymentStatus, trackingNumber string, deliveredAt *time.Time) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByOrderNumber(orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByCheckoutRequestID(checkoutRequestID string) (*model.Order, error) {
	var order model.Order
	if err := r.db.Where("checkout_request_id = ?", checkoutRequestID).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	if err := r.db.Model(&model.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) AttachCheckoutRequest(orderNumber, checkoutRequestID string) error {
	res := r.db.Model(&model.Order{}).
		Where("order_number = ? AND payment_status = ?", orderNumber, model.PaymentPending).
		Update("checkout_request_id", checkoutRequestID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *orderRepository) MarkPaid(checkoutRequestID string, details model.PaymentDetails) error {
	res := r.db.Model(&model.Order{}).
		Where("checkout_request_id = ? AND payment_status = ?", checkoutRequestID, model.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status":  model.PaymentPaid,
			"status":          model.StatusPaid,
			"payment_details": details,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *orderRepository) MarkFailed(checkoutRequestID string) error {
	res := r.db.Model(&model.Order{}).
		Where("checkout_request_id = ? AND payment_status = ?", checkoutRequestID, model.PaymentPending).
		Updates(map[string]interface{}{
			"payment_status": model.PaymentFailed,
			"status":         model.StatusCancelled,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotPending
	}
	return nil
}

func (r *orderRepository) UpdateStatus(orderNumber, status, paymentStatus, trackingNumber string, deliveredAt *time.Time) error {
	updates := map[string]interface{}{
		"status": status,
	}
	if paymentStatus != "" {
		updates["payment_status"] = paymentStatus
	}
	if trackingNumber != "" {
		updates["tracking_number"] = trackingNumber
	}
	if deliveredAt != nil {
		updates["delivered_at"] = deliveredAt
	}
	return r.db.Model(&model.Order{}).Where("order_number = ?", orderNumber).Updates(updates).Error
}
