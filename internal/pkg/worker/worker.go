package worker

import (
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/coupon/model"
	"github.com/Bange254/Bttshoes/internal/domain/coupon/repository"
	"github.com/Bange254/Bttshoes/pkg/logger"

	"go.uber.org/zap"
)

// ClaimTask records a coupon claim that passed the Redis pre-check and
// now needs its database write.
type ClaimTask struct {
	UserID   string
	CouponID string
	Retry    int
}

// ClaimPool persists coupon claims asynchronously so the hot claim
// path never waits on the database.
type ClaimPool struct {
	TaskQueue  chan ClaimTask
	RetryQueue chan ClaimTask
	Repo       repository.CouponRepository
	WorkerNum  int
	MaxRetry   int
}

func NewClaimPool(repo repository.CouponRepository, workerNum int, bufferSize int) *ClaimPool {
	return &ClaimPool{
		TaskQueue:  make(chan ClaimTask, bufferSize),
		RetryQueue: make(chan ClaimTask, bufferSize/2),
		Repo:       repo,
		WorkerNum:  workerNum,
		MaxRetry:   3,
	}
}

func (p *ClaimPool) Start() {
	for i := 0; i < p.WorkerNum; i++ {
		go p.worker(i)
	}
	go p.retryWorker()
	logger.Log.Info("coupon claim pool started", zap.Int("workers", p.WorkerNum))
}

func (p *ClaimPool) worker(id int) {
	for task := range p.TaskQueue {
		if err := p.processTask(task); err != nil {
			logger.Log.Error("claim task failed",
				zap.Int("worker", id),
				zap.String("user_id", task.UserID),
				zap.String("coupon_id", task.CouponID),
				zap.Error(err),
			)

			if task.Retry < p.MaxRetry {
				task.Retry++
				select {
				case p.RetryQueue <- task:
				default:
					logger.Log.Error("retry queue full, claim task dropped",
						zap.String("user_id", task.UserID),
						zap.String("coupon_id", task.CouponID),
					)
				}
			} else {
				logger.Log.Error("claim task exceeded max retries, dropped",
					zap.String("user_id", task.UserID),
					zap.String("coupon_id", task.CouponID),
				)
			}
		}
	}
}

func (p *ClaimPool) retryWorker() {
	for task := range p.RetryQueue {
		// back off before re-queueing
		time.Sleep(time.Duration(task.Retry) * time.Second)

		select {
		case p.TaskQueue <- task:
		default:
			logger.Log.Error("main queue full, claim task dropped",
				zap.String("user_id", task.UserID),
				zap.String("coupon_id", task.CouponID),
			)
		}
	}
}

func (p *ClaimPool) processTask(task ClaimTask) error {
	if err := p.Repo.DecreaseStock(task.CouponID); err != nil {
		return err
	}

	userCoupon := &model.UserCoupon{
		UserID:   task.UserID,
		CouponID: task.CouponID,
		Status:   model.UserCouponUnused,
	}

	return p.Repo.CreateUserCoupon(userCoupon)
}

// AddTask enqueues a claim write, dropping when the queue is full.
func (p *ClaimPool) AddTask(task ClaimTask) {
	select {
	case p.TaskQueue <- task:
	default:
		logger.Log.Error("claim pool queue full, dropping task",
			zap.String("user_id", task.UserID),
			zap.String("coupon_id", task.CouponID),
		)
	}
}
