package repository

import (
	"errors"

	"github.com/Bange254/Bttshoes/internal/domain/coupon/model"

	"gorm.io/gorm"
)

// ErrAlreadyRedeemed is returned when a redemption races another and
// loses; the coupon stays single-use.
var ErrAlreadyRedeemed = errors.New("coupon already redeemed")

type CouponRepository interface {
	Create(coupon *model.Coupon) error
	GetByID(id string) (*model.Coupon, error)
	DecreaseStock(couponID string) error
	CreateUserCoupon(uc *model.UserCoupon) error
	GetUserCoupon(userID, couponID string) (*model.UserCoupon, error)

	// Redeem flips an unused claim to used; the update is conditional
	// so a claim can only be consumed once.
	Redeem(userID, couponID string) error
}

type couponRepository struct {
	db *gorm.DB
}

func NewCouponRepository(db *gorm.DB) CouponRepository {
	return &couponRepository{db: db}
}

func (r *couponRepository) Create(coupon *model.Coupon) error {
	return r.db.Create(coupon).Error
}

func (r *couponRepository) GetByID(id string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.db.Where("id = ?", id).First(&coupon).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) DecreaseStock(couponID string) error {
	return r.db.Model(&model.Coupon{}).
		Where("id = ? AND stock > 0", couponID).
		UpdateColumn("stock", gorm.Expr("stock - 1")).Error
}

func (r *couponRepository) CreateUserCoupon(uc *model.UserCoupon) error {
	return r.db.Create(uc).Error
}

func (r *couponRepository) GetUserCoupon(userID, couponID string) (*model.UserCoupon, error) {
	var uc model.UserCoupon
	err := r.db.Where("user_id = ? AND coupon_id = ?", userID, couponID).First(&uc).Error
	if err != nil {
		return nil, err
	}
	return &uc, nil
}

func (r *couponRepository) Redeem(userID, couponID string) error {
	res := r.db.Model(&model.UserCoupon{}).
		Where("user_id = ? AND coupon_id = ? AND status = ?", userID, couponID, model.UserCouponUnused).
		Update("status", model.UserCouponUsed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyRedeemed
	}
	return nil
}
