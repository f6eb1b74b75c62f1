package repository

import (
	"time"

	"github.com/Bange254/Bttshoes/internal/domain/notification/model"

	"gorm.io/gorm"
)

type OutboxRepository interface {
	Create(msg *model.EmailOutbox) error
	GetPending(limit int) ([]model.EmailOutbox, error)
	MarkSent(id string) error
	RecordFailure(id string, attempts int, lastError string, final bool) error
	CountPending() (int64, error)
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(msg *model.EmailOutbox) error {
	return r.db.Create(msg).Error
}

func (r *outboxRepository) GetPending(limit int) ([]model.EmailOutbox, error) {
	var msgs []model.EmailOutbox
	err := r.db.Where("status = ?", model.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *outboxRepository) MarkSent(id string) error {
	now := time.Now()
	return r.db.Model(&model.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.StatusSent,
			"sent_at": &now,
		}).Error
}

func (r *outboxRepository) RecordFailure(id string, attempts int, lastError string, final bool) error {
	status := model.StatusPending
	if final {
		status = model.StatusFailed
	}
	return r.db.Model(&model.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}

func (r *outboxRepository) CountPending() (int64, error) {
	var count int64
	err := r.db.Model(&model.EmailOutbox{}).
		Where("status = ?", model.StatusPending).
		Count(&count).Error
	return count, err
}
