package service

import (
	"testing"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/order/model"
	productModel "github.com/Bange254/Bttshoes/internal/domain/product/model"
	productRepo "github.com/Bange254/Bttshoes/internal/domain/product/repository"
	pkgmodel "github.com/Bange254/Bttshoes/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockOrderRepository is a mock of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *model.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByOrderNumber(orderNumber string) (*model.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByCheckoutRequestID(checkoutRequestID string) (*model.Order, error) {
	args := m.Called(checkoutRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(userID string, offset, limit int) ([]model.Order, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) AttachCheckoutRequest(orderNumber, checkoutRequestID string) error {
	args := m.Called(orderNumber, checkoutRequestID)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkPaid(checkoutRequestID string, details model.PaymentDetails) error {
	args := m.Called(checkoutRequestID, details)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkFailed(checkoutRequestID string) error {
	args := m.Called(checkoutRequestID)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatus(orderNumber, status, paymentStatus, trackingNumber string, deliveredAt *time.Time) error {
	args := m.Called(orderNumber, status, paymentStatus, trackingNumber, deliveredAt)
	return args.Error(0)
}

// MockProductService is a mock of ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(p *productModel.Product) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockProductService) GetProduct(id string) (*productModel.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*productModel.Product), args.Error(1)
}

func (m *MockProductService) GetProducts(filter productRepo.ListFilter, page, limit int) ([]productModel.Product, int64, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).([]productModel.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) GetWholesaleProducts(category, brand string, page, limit int) ([]productModel.Product, int64, error) {
	args := m.Called(category, brand, page, limit)
	return args.Get(0).([]productModel.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductService) PriceFor(p *productModel.Product, quantity int, wholesale bool) float64 {
	args := m.Called(p, quantity, wholesale)
	return args.Get(0).(float64)
}

// MockCouponRedeemer is a mock of CouponRedeemer
type MockCouponRedeemer struct {
	mock.Mock
}

func (m *MockCouponRedeemer) RedeemCoupon(userID, couponID string) (float64, error) {
	args := m.Called(userID, couponID)
	return args.Get(0).(float64), args.Error(1)
}

func testProduct(id string, price float64) *productModel.Product {
	return &productModel.Product{
		BaseModel: pkgmodel.BaseModel{ID: id},
		Name:      "Air Max 90",
		Price:     price,
		Category:  "sneakers",
		Brand:     "Nike",
		SKU:       "SNE-AIR-001",
		Images:    productModel.StringList{"https://cdn.bttshoes.com/airmax90.jpg"},
		Status:    productModel.StatusActive,
	}
}

func nairobiAddress() model.Address {
	return model.Address{
		Name:    "Jane Wanjiku",
		Phone:   "0712345678",
		Address: "Moi Avenue 12",
		City:    "Nairobi",
	}
}

func mombasaAddress() model.Address {
	a := nairobiAddress()
	a.City = "Mombasa"
	return a
}

func TestCheckout(t *testing.T) {
	t.Run("Empty cart rejected", func(t *testing.T) {
		svc := NewOrderService(new(MockOrderRepository), new(MockProductService), new(MockCouponRedeemer))

		_, err := svc.Checkout(CheckoutInput{Email: "jane@example.com"})

		assert.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("Unknown product rejected", func(t *testing.T) {
		products := new(MockProductService)
		products.On("GetProduct", "missing").Return(nil, gorm.ErrRecordNotFound)

		svc := NewOrderService(new(MockOrderRepository), products, new(MockCouponRedeemer))

		_, err := svc.Checkout(CheckoutInput{
			Email: "jane@example.com",
			Items: []CheckoutItem{{ProductID: "missing", Quantity: 1, Size: "42", Color: "black"}},
		})

		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Totals snapshot prices at checkout time", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductService)
		p := testProduct("prod-1", 4500)

		products.On("GetProduct", "prod-1").Return(p, nil)
		products.On("PriceFor", p, 3, false).Return(4500.0)
		orders.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(orders, products, new(MockCouponRedeemer))

		order, err := svc.Checkout(CheckoutInput{
			Email:           "jane@example.com",
			Items:           []CheckoutItem{{ProductID: "prod-1", Quantity: 3, Size: "42", Color: "black"}},
			ShippingAddress: nairobiAddress(),
			PaymentMethod:   model.MethodMpesa,
		})

		assert.NoError(t, err)
		assert.Equal(t, 13500.0, order.Subtotal)
		assert.Equal(t, 0.0, order.Shipping) // free over 10000 KES
		assert.Equal(t, 13500.0, order.Total)
		assert.Equal(t, "KES", order.Currency)
		assert.Equal(t, model.StatusPending, order.Status)
		assert.Equal(t, model.PaymentPending, order.PaymentStatus)
		assert.NotEmpty(t, order.OrderNumber)
		assert.Len(t, order.Items, 1)
		assert.Equal(t, 4500.0, order.Items[0].Price)
	})

	t.Run("Nairobi shipping fee under the free threshold", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductService)
		p := testProduct("prod-1", 3000)

		products.On("GetProduct", "prod-1").Return(p, nil)
		products.On("PriceFor", p, 1, false).Return(3000.0)
		orders.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(orders, products, new(MockCouponRedeemer))

		order, err := svc.Checkout(CheckoutInput{
			Email:           "jane@example.com",
			Items:           []CheckoutItem{{ProductID: "prod-1", Quantity: 1, Size: "42", Color: "black"}},
			ShippingAddress: nairobiAddress(),
			PaymentMethod:   model.MethodMpesa,
		})

		assert.NoError(t, err)
		assert.Equal(t, 200.0, order.Shipping)
		assert.Equal(t, 3200.0, order.Total)
	})

	t.Run("Upcountry shipping fee", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductService)
		p := testProduct("prod-1", 3000)

		products.On("GetProduct", "prod-1").Return(p, nil)
		products.On("PriceFor", p, 1, false).Return(3000.0)
		orders.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(orders, products, new(MockCouponRedeemer))

		order, err := svc.Checkout(CheckoutInput{
			Email:           "jane@example.com",
			Items:           []CheckoutItem{{ProductID: "prod-1", Quantity: 1, Size: "42", Color: "black"}},
			ShippingAddress: mombasaAddress(),
			PaymentMethod:   model.MethodMpesa,
		})

		assert.NoError(t, err)
		assert.Equal(t, 500.0, order.Shipping)
	})

	t.Run("Coupon discount clamped to subtotal", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductService)
		coupons := new(MockCouponRedeemer)
		p := testProduct("prod-1", 500)
		userID := "user-1"

		products.On("GetProduct", "prod-1").Return(p, nil)
		products.On("PriceFor", p, 1, false).Return(500.0)
		coupons.On("RedeemCoupon", userID, "coupon-1").Return(1000.0, nil)
		orders.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(orders, products, coupons)

		order, err := svc.Checkout(CheckoutInput{
			UserID:          &userID,
			Email:           "jane@example.com",
			Items:           []CheckoutItem{{ProductID: "prod-1", Quantity: 1, Size: "42", Color: "black"}},
			ShippingAddress: nairobiAddress(),
			PaymentMethod:   model.MethodMpesa,
			CouponID:        "coupon-1",
		})

		assert.NoError(t, err)
		assert.Equal(t, 500.0, order.Discount)
		assert.Equal(t, 200.0, order.Total) // only shipping remains
	})

	t.Run("Wholesale order uses tier pricing", func(t *testing.T) {
		orders := new(MockOrderRepository)
		products := new(MockProductService)
		p := testProduct("prod-1", 4500)

		products.On("GetProduct", "prod-1").Return(p, nil)
		products.On("PriceFor", p, 20, true).Return(3800.0)
		orders.On("Create", mock.AnythingOfType("*model.Order")).Return(nil)

		svc := NewOrderService(orders, products, new(MockCouponRedeemer))

		order, err := svc.Checkout(CheckoutInput{
			Email:           "duka@example.com",
			Items:           []CheckoutItem{{ProductID: "prod-1", Quantity: 20, Size: "42", Color: "black"}},
			ShippingAddress: nairobiAddress(),
			PaymentMethod:   model.MethodMpesa,
			OrderType:       model.TypeWholesale,
		})

		assert.NoError(t, err)
		assert.Equal(t, model.TypeWholesale, order.OrderType)
		assert.Equal(t, 3800.0*20, order.Subtotal)
	})
}

func TestTrackOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	svc := NewOrderService(orders, new(MockProductService), new(MockCouponRedeemer))

	stored := &model.Order{OrderNumber: "BTT-000001-000001", Email: "jane@example.com"}
	orders.On("GetByOrderNumber", "BTT-000001-000001").Return(stored, nil)
	orders.On("GetByOrderNumber", "BTT-404404-404404").Return(nil, gorm.ErrRecordNotFound)

	t.Run("Matching email returns the order", func(t *testing.T) {
		order, err := svc.TrackOrder("BTT-000001-000001", "Jane@Example.com")
		assert.NoError(t, err)
		assert.Equal(t, "BTT-000001-000001", order.OrderNumber)
	})

	t.Run("Wrong email looks like a missing order", func(t *testing.T) {
		_, err := svc.TrackOrder("BTT-000001-000001", "other@example.com")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	t.Run("Unknown order number", func(t *testing.T) {
		_, err := svc.TrackOrder("BTT-404404-404404", "jane@example.com")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}

func TestUpdateStatus(t *testing.T) {
	t.Run("Legal fulfilment transition", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductService), new(MockCouponRedeemer))

		stored := &model.Order{
			OrderNumber:   "BTT-000003-000001",
			Status:        model.StatusPaid,
			PaymentStatus: model.PaymentPaid,
		}
		orders.On("GetByOrderNumber", "BTT-000003-000001").Return(stored, nil)
		orders.On("UpdateStatus", "BTT-000003-000001", model.StatusProcessing, "", "", (*time.Time)(nil)).Return(nil)

		_, err := svc.UpdateStatus("BTT-000003-000001", model.StatusProcessing, "")

		assert.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("Illegal transition rejected", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductService), new(MockCouponRedeemer))

		stored := &model.Order{
			OrderNumber:   "BTT-000003-000002",
			Status:        model.StatusPending,
			PaymentStatus: model.PaymentPending,
		}
		orders.On("GetByOrderNumber", "BTT-000003-000002").Return(stored, nil)

		_, err := svc.UpdateStatus("BTT-000003-000002", model.StatusShipped, "")

		assert.ErrorIs(t, err, ErrBadTransition)
		orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Refund also moves the payment status", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductService), new(MockCouponRedeemer))

		stored := &model.Order{
			OrderNumber:   "BTT-000003-000003",
			Status:        model.StatusPaid,
			PaymentStatus: model.PaymentPaid,
		}
		orders.On("GetByOrderNumber", "BTT-000003-000003").Return(stored, nil)
		orders.On("UpdateStatus", "BTT-000003-000003", model.StatusRefunded, model.PaymentRefunded, "", (*time.Time)(nil)).Return(nil)

		_, err := svc.UpdateStatus("BTT-000003-000003", model.StatusRefunded, "")

		assert.NoError(t, err)
		orders.AssertExpectations(t)
	})

	t.Run("Delivery stamps the delivered time", func(t *testing.T) {
		orders := new(MockOrderRepository)
		svc := NewOrderService(orders, new(MockProductService), new(MockCouponRedeemer))

		stored := &model.Order{
			OrderNumber:   "BTT-000003-000004",
			Status:        model.StatusShipped,
			PaymentStatus: model.PaymentPaid,
		}
		orders.On("GetByOrderNumber", "BTT-000003-000004").Return(stored, nil)
		orders.On("UpdateStatus", "BTT-000003-000004", model.StatusDelivered, "", "", mock.MatchedBy(func(ts *time.Time) bool {
			return ts != nil && time.Since(*ts) < time.Minute
		})).Return(nil)

		_, err := svc.UpdateStatus("BTT-000003-000004", model.StatusDelivered, "")

		assert.NoError(t, err)
		orders.AssertExpectations(t)
	})
}
