package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/order/model"
	"github.com/Bange254/Bttshoes/internal/domain/order/repository"
	productModel "github.com/Bange254/Bttshoes/internal/domain/product/model"
	productService "github.com/Bange254/Bttshoes/internal/domain/product/service"
	"github.com/Bange254/Bttshoes/pkg/logger"
	"github.com/Bange254/Bttshoes/pkg/utils"

	"go.uber.org/zap"
)

var (
	ErrEmptyCart         = errors.New("order must contain at least one item")
	ErrProductNotFound   = errors.New("product not found or inactive")
	ErrOrderNotFound     = errors.New("order not found")
	ErrBadTransition     = errors.New("illegal status transition")
	ErrInvalidStatusPair = errors.New("status and payment status combination is not allowed")
)

// free shipping threshold and zone fees, in KES
const (
	freeShippingOver   = 10000.0
	nairobiShippingFee = 200.0
	upcountryFee       = 500.0
)

// CheckoutItem is one requested line at checkout.
type CheckoutItem struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
}

// CheckoutInput is the full checkout submission.
type CheckoutInput struct {
	UserID          *string
	Email           string
	Items           []CheckoutItem
	ShippingAddress model.Address
	BillingAddress  model.Address
	PaymentMethod   string
	OrderType       string
	CouponID        string
	Notes           string
}

// CouponRedeemer is the slice of the coupon service checkout needs.
type CouponRedeemer interface {
	RedeemCoupon(userID, couponID string) (float64, error)
}

type OrderService interface {
	Checkout(input CheckoutInput) (*model.Order, error)
	GetUserOrders(userID string, page, limit int) ([]model.Order, int64, error)
	TrackOrder(orderNumber, email string) (*model.Order, error)
	UpdateStatus(orderNumber, newStatus, trackingNumber string) (*model.Order, error)
}

type orderService struct {
	repo       repository.OrderRepository
	productSvc productService.ProductService
	couponSvc  CouponRedeemer
}

func NewOrderService(repo repository.OrderRepository, productSvc productService.ProductService, couponSvc CouponRedeemer) OrderService {
	return &orderService{
		repo:       repo,
		productSvc: productSvc,
		couponSvc:  couponSvc,
	}
}

// Checkout freezes the cart into an order. Prices, totals and
// addresses are snapshotted here; later catalog or price changes never
// affect this order.
func (s *orderService) Checkout(input CheckoutInput) (*model.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrEmptyCart
	}

	wholesale := input.OrderType == model.TypeWholesale

	var items model.OrderItems
	var subtotal float64
	for _, line := range input.Items {
		product, err := s.productSvc.GetProduct(line.ProductID)
		if err != nil || product.Status != productModel.StatusActive {
			return nil, ErrProductNotFound
		}

		unitPrice := s.productSvc.PriceFor(product, line.Quantity, wholesale)
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}

		items = append(items, model.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     unitPrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Image:     image,
			SKU:       product.SKU,
		})
		subtotal += unitPrice * float64(line.Quantity)
	}

	var discount float64
	if input.CouponID != "" && input.UserID != nil {
		amount, err := s.couponSvc.RedeemCoupon(*input.UserID, input.CouponID)
		if err != nil {
			return nil, fmt.Errorf("coupon: %w", err)
		}
		discount = amount
		if discount > subtotal {
			discount = subtotal
		}
	}

	shipping := shippingFee(input.ShippingAddress.City, subtotal)
	total := subtotal - discount + shipping

	estimated := estimatedDelivery(input.ShippingAddress.City)
	order := &model.Order{
		OrderNumber:       utils.GenerateOrderNumber(),
		UserID:            input.UserID,
		Email:             input.Email,
		Items:             items,
		Subtotal:          subtotal,
		Shipping:          shipping,
		Tax:               0, // KES prices are VAT-inclusive
		Discount:          discount,
		Total:             total,
		Currency:          "KES",
		Status:            model.StatusPending,
		PaymentMethod:     input.PaymentMethod,
		PaymentStatus:     model.PaymentPending,
		ShippingAddress:   input.ShippingAddress,
		BillingAddress:    input.BillingAddress,
		OrderType:         orDefault(input.OrderType, model.TypeRetail),
		Notes:             input.Notes,
		EstimatedDelivery: &estimated,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}

	logger.Log.Info("order created",
		zap.String("order_number", order.OrderNumber),
		zap.Float64("total", order.Total),
		zap.String("payment_method", order.PaymentMethod),
	)
	return order, nil
}

func (s *orderService) GetUserOrders(userID string, page, limit int) ([]model.Order, int64, error) {
	pg := utils.Pagination{Page: page, Limit: limit}
	offset, lim := pg.GetPageOffset()
	return s.repo.ListByUser(userID, offset, lim)
}

// TrackOrder resolves an order by number. The caller must supply the
// order's email so guests cannot enumerate other customers' orders.
func (s *orderService) TrackOrder(orderNumber, email string) (*model.Order, error) {
	order, err := s.repo.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	if !strings.EqualFold(order.Email, email) {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus applies an administrative fulfilment transition,
// enforcing the lifecycle table.
func (s *orderService) UpdateStatus(orderNumber, newStatus, trackingNumber string) (*model.Order, error) {
	order, err := s.repo.GetByOrderNumber(orderNumber)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	if !model.CanTransition(order.Status, newStatus) {
		return nil, ErrBadTransition
	}

	paymentStatus := ""
	if newStatus == model.StatusRefunded {
		paymentStatus = model.PaymentRefunded
	}

	check := order.PaymentStatus
	if paymentStatus != "" {
		check = paymentStatus
	}
	if !model.ValidCombination(newStatus, check) {
		return nil, ErrInvalidStatusPair
	}

	var deliveredAt *time.Time
	if newStatus == model.StatusDelivered {
		now := time.Now()
		deliveredAt = &now
	}

	if err := s.repo.UpdateStatus(orderNumber, newStatus, paymentStatus, trackingNumber, deliveredAt); err != nil {
		return nil, err
	}

	return s.repo.GetByOrderNumber(orderNumber)
}

func shippingFee(city string, subtotal float64) float64 {
	if subtotal >= freeShippingOver {
		return 0
	}
	if isNairobi(city) {
		return nairobiShippingFee
	}
	return upcountryFee
}

func estimatedDelivery(city string) time.Time {
	days := 5
	if isNairobi(city) {
		days = 2
	}
	return time.Now().AddDate(0, 0, days)
}

func isNairobi(city string) bool {
	return strings.Contains(strings.ToLower(city), "nairobi")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
