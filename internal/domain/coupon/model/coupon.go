package model

import (
	"time"

	baseModel "github.com/Bange254/Bttshoes/pkg/model"
)

// UserCoupon statuses.
const (
	UserCouponUnused  = 1
	UserCouponUsed    = 2
	UserCouponExpired = 3
)

// Coupon is a fixed-amount discount with limited stock and a validity
// window.
type Coupon struct {
	baseModel.BaseModel
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Total     int       `gorm:"not null" json:"total"`
	Stock     int       `gorm:"not null" json:"stock"`
	Amount    float64   `gorm:"not null" json:"amount"` // KES off the order subtotal
	StartTime time.Time `gorm:"not null" json:"startTime"`
	EndTime   time.Time `gorm:"not null" json:"endTime"`
}

// UserCoupon is one claimed coupon. Single use: redeemed at checkout.
type UserCoupon struct {
	baseModel.BaseModel
	UserID   string `gorm:"type:uuid;index;not null" json:"userId"`
	CouponID string `gorm:"type:uuid;index;not null" json:"couponId"`
	Status   int    `gorm:"default:1" json:"status"`
}
