package service

import (
	"context"
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/notification/repository"
	"github.com/Bange254/Bttshoes/internal/pkg/mailer"
	"github.com/Bange254/Bttshoes/pkg/logger"
	"github.com/Bange254/Bttshoes/pkg/metrics"

	"go.uber.org/zap"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 10
	defaultMaxAttempts  = 3
	sendTimeout         = 15 * time.Second
)

// Dispatcher drains the email outbox on a ticker. Each row gets up to
// maxAttempts deliveries before it is parked as failed; nothing here
// ever propagates back into the payment flow.
type Dispatcher struct {
	repo         repository.OutboxRepository
	mailer       mailer.Mailer
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
}

func NewDispatcher(repo repository.OutboxRepository, m mailer.Mailer) *Dispatcher {
	return &Dispatcher{
		repo:         repo,
		mailer:       m,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
		maxAttempts:  defaultMaxAttempts,
	}
}

// Start runs the dispatch loop until the context is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(d.pollInterval)
		defer ticker.Stop()

		logger.Log.Info("email dispatcher started", zap.Duration("interval", d.pollInterval))

		for {
			select {
			case <-ctx.Done():
				logger.Log.Info("email dispatcher stopped")
				return
			case <-ticker.C:
				d.dispatchBatch(ctx)
			}
		}
	}()
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) {
	msgs, err := d.repo.GetPending(d.batchSize)
	if err != nil {
		logger.Log.Error("outbox poll failed", zap.Error(err))
		return
	}

	collector := metrics.GetCollector()

	for _, msg := range msgs {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		_, err := d.mailer.Send(sendCtx, mailer.Message{
			To:      msg.Recipient,
			Subject: msg.Subject,
			HTML:    msg.Body,
		})
		cancel()

		if err != nil {
			attempts := msg.Attempts + 1
			final := attempts >= d.maxAttempts
			collector.RecordEmailDispatched(msg.Kind, "error")
			logger.Log.Error("email send failed",
				zap.String("outbox_id", msg.ID),
				zap.String("kind", msg.Kind),
				zap.Int("attempts", attempts),
				zap.Bool("final", final),
				zap.Error(err),
			)
			if err := d.repo.RecordFailure(msg.ID, attempts, err.Error(), final); err != nil {
				logger.Log.Error("outbox failure update failed", zap.String("outbox_id", msg.ID), zap.Error(err))
			}
			continue
		}

		collector.RecordEmailDispatched(msg.Kind, "sent")
		if err := d.repo.MarkSent(msg.ID); err != nil {
			// worst case the next poll re-sends; acceptable for
			// confirmation mail, unlike payment state
			logger.Log.Error("outbox sent update failed", zap.String("outbox_id", msg.ID), zap.Error(err))
		}
	}

	if pending, err := d.repo.CountPending(); err == nil {
		collector.SetOutboxPending(int(pending))
	}
}
