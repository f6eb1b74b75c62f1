package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	baseModel "github.com/Bange254/Bttshoes/pkg/model"
)

// Order lifecycle statuses.
const (
	StatusPending    = "pending"
	StatusPaid       = "paid"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusRefunded   = "refunded"
)

// Payment statuses, tracked separately from fulfilment.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Payment methods.
const (
	MethodMpesa = "mpesa"
	MethodCOD   = "cod"
)

// Order types.
const (
	TypeRetail    = "retail"
	TypeWholesale = "wholesale"
)

// OrderItem is a line-item snapshot taken at checkout. Prices are
// frozen here; later catalog changes never affect historical orders.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Image     string  `json:"image"`
	SKU       string  `json:"sku"`
}

// OrderItems stores the line items as a jsonb column.
type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) { return json.Marshal(i) }

func (i *OrderItems) Scan(value interface{}) error {
	return scanJSON(value, i)
}

// Address is a shipping or billing address snapshot.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

func (a Address) Value() (driver.Value, error) { return json.Marshal(a) }

func (a *Address) Scan(value interface{}) error {
	return scanJSON(value, a)
}

// PaymentDetails holds the opaque gateway identifiers, populated only
// on a successful callback.
type PaymentDetails struct {
	TransactionID      string `json:"transactionId,omitempty"`
	MpesaReceiptNumber string `json:"mpesaReceiptNumber,omitempty"`
	PhoneNumber        string `json:"phoneNumber,omitempty"`
}

func (d PaymentDetails) Value() (driver.Value, error) { return json.Marshal(d) }

func (d *PaymentDetails) Scan(value interface{}) error {
	return scanJSON(value, d)
}

func scanJSON(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported jsonb source type")
	}
}

// Order is the persisted order record. The financial snapshot
// (subtotal through total) is captured at creation and never
// recomputed. CheckoutRequestID correlates the gateway's asynchronous
// callback back to this order; it is set once per payment initiation
// and not reused after the payment resolves.
type Order struct {
	baseModel.BaseModel
	OrderNumber       string         `gorm:"uniqueIndex;not null" json:"orderNumber"`
	UserID            *string        `gorm:"type:uuid;index" json:"userId,omitempty"` // nil for guest checkout
	Email             string         `gorm:"not null;index" json:"email"`
	Items             OrderItems     `gorm:"type:jsonb;not null" json:"items"`
	Subtotal          float64        `gorm:"not null" json:"subtotal"`
	Shipping          float64        `gorm:"not null;default:0" json:"shipping"`
	Tax               float64        `gorm:"not null;default:0" json:"tax"`
	Discount          float64        `gorm:"not null;default:0" json:"discount"`
	Total             float64        `gorm:"not null" json:"total"`
	Currency          string         `gorm:"not null;default:'KES'" json:"currency"`
	Status            string         `gorm:"not null;default:'pending';index" json:"status"`
	PaymentMethod     string         `gorm:"not null" json:"paymentMethod"`
	PaymentStatus     string         `gorm:"not null;default:'pending'" json:"paymentStatus"`
	CheckoutRequestID string         `gorm:"index" json:"-"`
	PaymentDetails    PaymentDetails `gorm:"type:jsonb" json:"paymentDetails"`
	ShippingAddress   Address        `gorm:"type:jsonb" json:"shippingAddress"`
	BillingAddress    Address        `gorm:"type:jsonb" json:"billingAddress"`
	OrderType         string         `gorm:"not null;default:'retail'" json:"orderType"`
	Notes             string         `json:"notes,omitempty"`
	TrackingNumber    string         `json:"trackingNumber,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
	DeliveredAt       *time.Time     `json:"deliveredAt,omitempty"`
}

// statusTransitions enumerates the legal lifecycle edges. Cancellation
// and refunds are reachable only from pending/paid; fulfilment is a
// straight line after that.
var statusTransitions = map[string][]string{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusCancelled, StatusRefunded},
	StatusProcessing: {StatusShipped},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// CanTransition reports whether moving the order status from one state
// to another is legal.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// validCombinations pins down which (status, paymentStatus) pairs are
// meaningful. Fulfilment states admit paymentStatus=pending to cover
// cash-on-delivery, where payment settles at the door.
var validCombinations = map[string][]string{
	StatusPending:    {PaymentPending},
	StatusPaid:       {PaymentPaid},
	StatusProcessing: {PaymentPaid, PaymentPending},
	StatusShipped:    {PaymentPaid, PaymentPending},
	StatusDelivered:  {PaymentPaid},
	StatusCancelled:  {PaymentPending, PaymentFailed, PaymentRefunded},
	StatusRefunded:   {PaymentRefunded},
}

// ValidCombination reports whether the status pair is allowed.
func ValidCombination(status, paymentStatus string) bool {
	for _, ps := range validCombinations[status] {
		if ps == paymentStatus {
			return true
		}
	}
	return false
}
