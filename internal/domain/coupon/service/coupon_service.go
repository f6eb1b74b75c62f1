package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/coupon/model"
	"github.com/Bange254/Bttshoes/internal/domain/coupon/repository"
	"github.com/Bange254/Bttshoes/internal/pkg/worker"

	"github.com/redis/go-redis/v9"
)

var (
	ErrOutOfStock     = errors.New("coupon out of stock")
	ErrAlreadyClaimed = errors.New("you have already claimed this coupon")
	ErrNotClaimed     = errors.New("coupon not claimed by this user")
	ErrNotActive      = errors.New("coupon is not active")
)

type CouponService interface {
	CreateCoupon(name string, total int, amount float64, startTime, endTime time.Time) (*model.Coupon, error)
	ClaimCoupon(userID, couponID string) error

	// RedeemCoupon consumes a claimed coupon at checkout and returns
	// the discount amount to apply.
	RedeemCoupon(userID, couponID string) (float64, error)
}

// Redeemer covers the redeem path on its own. Checkout only ever
// redeems, so it takes a Redeemer and no claim workers are started on
// its behalf.
type Redeemer struct {
	repo repository.CouponRepository
}

func NewRedeemer(repo repository.CouponRepository) *Redeemer {
	return &Redeemer{repo: repo}
}

// RedeemCoupon consumes a claimed coupon and returns the discount
// amount to apply.
func (r *Redeemer) RedeemCoupon(userID, couponID string) (float64, error) {
	coupon, err := r.repo.GetByID(couponID)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	if now.Before(coupon.StartTime) || now.After(coupon.EndTime) {
		return 0, ErrNotActive
	}

	if _, err := r.repo.GetUserCoupon(userID, couponID); err != nil {
		return 0, ErrNotClaimed
	}

	if err := r.repo.Redeem(userID, couponID); err != nil {
		return 0, err
	}

	return coupon.Amount, nil
}

type couponService struct {
	*Redeemer
	rdb        *redis.Client
	soldOutMap sync.Map // local cache of sold-out coupon ids
	claimPool  *worker.ClaimPool
}

func NewCouponService(repo repository.CouponRepository, rdb *redis.Client) CouponService {
	pool := worker.NewClaimPool(repo, 5, 1000)
	pool.Start()

	return &couponService{
		Redeemer:  NewRedeemer(repo),
		rdb:       rdb,
		claimPool: pool,
	}
}

func (s *couponService) CreateCoupon(name string, total int, amount float64, startTime, endTime time.Time) (*model.Coupon, error) {
	coupon := &model.Coupon{
		Name:      name,
		Total:     total,
		Stock:     total,
		Amount:    amount,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if err := s.repo.Create(coupon); err != nil {
		return nil, err
	}

	// warm the stock counter
	stockKey := fmt.Sprintf("coupon:stock:%s", coupon.ID)
	s.rdb.Set(context.Background(), stockKey, total, 0)

	return coupon, nil
}

// claimScript checks dup-claim and stock, decrements and records the
// claim in one atomic round trip.
var claimScript = redis.NewScript(`
	local user_key = KEYS[1]
	local stock_key = KEYS[2]
	local user_id = ARGV[1]

	if redis.call("SISMEMBER", user_key, user_id) == 1 then
		return -1
	end

	local stock = tonumber(redis.call("GET", stock_key))
	if stock == nil or stock <= 0 then
		return -2
	end

	redis.call("DECR", stock_key)
	redis.call("SADD", user_key, user_id)

	return 1
`)

func (s *couponService) ClaimCoupon(userID, couponID string) error {
	// local sold-out cache avoids the network round trip entirely
	if _, ok := s.soldOutMap.Load(couponID); ok {
		return ErrOutOfStock
	}

	ctx := context.Background()
	userKey := fmt.Sprintf("coupon:users:%s", couponID)
	stockKey := fmt.Sprintf("coupon:stock:%s", couponID)

	result, err := claimScript.Run(ctx, s.rdb, []string{userKey, stockKey}, userID).Int()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}

	if result == -1 {
		return ErrAlreadyClaimed
	}
	if result == -2 {
		s.soldOutMap.Store(couponID, true)
		return ErrOutOfStock
	}

	// Redis accepted the claim; the database write happens async
	s.claimPool.AddTask(worker.ClaimTask{
		UserID:   userID,
		CouponID: couponID,
	})

	return nil
}
