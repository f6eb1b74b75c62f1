package service

import (
	"context"
	"errors"
	"fmt"

	notifyService "github.com/Bange254/Bttshoes/internal/domain/notification/service"
	orderModel "github.com/Bange254/Bttshoes/internal/domain/order/model"
	orderRepo "github.com/Bange254/Bttshoes/internal/domain/order/repository"
	"github.com/Bange254/Bttshoes/internal/domain/payment/strategy"
	"github.com/Bange254/Bttshoes/internal/pkg/mpesa"
	"github.com/Bange254/Bttshoes/pkg/logger"
	"github.com/Bange254/Bttshoes/pkg/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrInvalidPhone    = errors.New("invalid phone number: expected a Kenyan mobile number")
	ErrInvalidAmount   = errors.New("amount must be between 1 and 300000 KES")
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPayable = errors.New("order is not awaiting payment")
)

// STK push amount bounds enforced by the provider, in whole KES.
const (
	minAmount = 1
	maxAmount = 300000
)

type PaymentService interface {
	// InitiatePayment sends an STK push for the order and records the
	// returned checkout request id against it.
	InitiatePayment(ctx context.Context, orderNumber, phoneNumber string) (strategy.STKPushResponse, error)

	// HandleCallback processes an asynchronous payment result. It never
	// returns an error for payloads that simply do not match a pending
	// order: duplicates and strays are logged and absorbed.
	HandleCallback(ctx context.Context, envelope strategy.CallbackEnvelope) error

	// CheckStatus polls the gateway for a push outcome. Read-only: the
	// order is only ever moved by the callback path.
	CheckStatus(ctx context.Context, checkoutRequestID string) strategy.PaymentStatus
}

type paymentService struct {
	gateway     strategy.Gateway
	orders      orderRepo.OrderRepository
	notifier    notifyService.Notifier
	callbackURL string
}

func NewPaymentService(gateway strategy.Gateway, orders orderRepo.OrderRepository, notifier notifyService.Notifier, callbackURL string) PaymentService {
	return &paymentService{
		gateway:     gateway,
		orders:      orders,
		notifier:    notifier,
		callbackURL: callbackURL,
	}
}

func (s *paymentService) InitiatePayment(ctx context.Context, orderNumber, phoneNumber string) (strategy.STKPushResponse, error) {
	if !mpesa.ValidatePhoneNumber(phoneNumber) {
		return strategy.STKPushResponse{}, ErrInvalidPhone
	}

	order, err := s.orders.GetByOrderNumber(orderNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return strategy.STKPushResponse{}, ErrOrderNotFound
		}
		return strategy.STKPushResponse{}, err
	}
	if order.PaymentStatus != orderModel.PaymentPending {
		return strategy.STKPushResponse{}, ErrOrderNotPayable
	}

	// Daraja only accepts whole shillings; fractional totals round up
	// so the customer is never undercharged.
	amount := int64(order.Total)
	if order.Total > float64(amount) {
		amount++
	}
	if amount < minAmount || amount > maxAmount {
		return strategy.STKPushResponse{}, ErrInvalidAmount
	}

	resp := s.gateway.InitiateSTKPush(ctx, strategy.STKPushRequest{
		PhoneNumber:      mpesa.FormatPhoneNumber(phoneNumber),
		Amount:           amount,
		AccountReference: order.OrderNumber,
		TransactionDesc:  fmt.Sprintf("Payment for order %s", order.OrderNumber),
		CallbackURL:      s.callbackURL,
	})

	if !resp.Success {
		metrics.GetCollector().RecordPaymentInitiation("rejected")
		logger.Log.Warn("stk push rejected",
			zap.String("order_number", orderNumber),
			zap.String("error", resp.ErrorMessage),
		)
		return resp, nil
	}

	if err := s.orders.AttachCheckoutRequest(orderNumber, resp.CheckoutRequestID); err != nil {
		return strategy.STKPushResponse{}, err
	}

	metrics.GetCollector().RecordPaymentInitiation("accepted")
	logger.Log.Info("stk push initiated",
		zap.String("order_number", orderNumber),
		zap.String("checkout_request_id", resp.CheckoutRequestID),
		zap.Int64("amount", amount),
	)
	return resp, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, envelope strategy.CallbackEnvelope) error {
	cb := envelope.Body.STKCallback

	if cb.ResultCode == 0 {
		return s.applySuccess(cb)
	}
	return s.applyFailure(cb)
}

func (s *paymentService) applySuccess(cb strategy.STKCallback) error {
	details := orderModel.PaymentDetails{
		TransactionID:      cb.CallbackMetadata.String("MpesaReceiptNumber"),
		MpesaReceiptNumber: cb.CallbackMetadata.String("MpesaReceiptNumber"),
		PhoneNumber:        cb.CallbackMetadata.String("PhoneNumber"),
	}

	err := s.orders.MarkPaid(cb.CheckoutRequestID, details)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotPending) {
			// duplicate delivery or unknown checkout id: absorb it
			metrics.GetCollector().RecordPaymentCallback("ignored")
			logger.Log.Warn("payment callback matched no pending order",
				zap.String("checkout_request_id", cb.CheckoutRequestID),
				zap.Int("result_code", cb.ResultCode),
			)
			return nil
		}
		metrics.GetCollector().RecordPaymentCallback("error")
		return err
	}

	metrics.GetCollector().RecordPaymentCallback("success")
	logger.Log.Info("payment confirmed",
		zap.String("checkout_request_id", cb.CheckoutRequestID),
		zap.String("receipt", details.MpesaReceiptNumber),
		zap.Float64("amount", cb.CallbackMetadata.Float("Amount")),
	)

	order, err := s.orders.GetByCheckoutRequestID(cb.CheckoutRequestID)
	if err != nil {
		logger.Log.Error("failed to load order for notification", zap.Error(err))
		return nil
	}
	if err := s.notifier.EnqueueOrderConfirmation(order); err != nil {
		logger.Log.Error("failed to queue confirmation email", zap.Error(err))
	}
	if err := s.notifier.EnqueueAdminNewOrder(order); err != nil {
		logger.Log.Error("failed to queue admin email", zap.Error(err))
	}
	return nil
}

func (s *paymentService) applyFailure(cb strategy.STKCallback) error {
	err := s.orders.MarkFailed(cb.CheckoutRequestID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrNotPending) {
			metrics.GetCollector().RecordPaymentCallback("ignored")
			logger.Log.Warn("failure callback matched no pending order",
				zap.String("checkout_request_id", cb.CheckoutRequestID),
				zap.Int("result_code", cb.ResultCode),
			)
			return nil
		}
		metrics.GetCollector().RecordPaymentCallback("error")
		return err
	}

	metrics.GetCollector().RecordPaymentCallback("failed")
	logger.Log.Info("payment failed",
		zap.String("checkout_request_id", cb.CheckoutRequestID),
		zap.Int("result_code", cb.ResultCode),
		zap.String("result_desc", cb.ResultDesc),
	)
	return nil
}

func (s *paymentService) CheckStatus(ctx context.Context, checkoutRequestID string) strategy.PaymentStatus {
	return s.gateway.CheckStatus(ctx, checkoutRequestID)
}
