package repository

import (
	"context"
	"errors"
	"time"

	"craveconnect/internal/models"

	"gorm.io/gorm"
)

// maxLastError matches the size of the outbox last_error column, in characters.
const maxLastError = 500

var errAlreadyProcessed = errors.New("outbox entry already processed")

// NotificationRepository covers the notification read side and the outbox the
// dispatcher drains.
type NotificationRepository interface {
	ListForRecipient(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID uint) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Notification, error)
	MarkRead(ctx context.Context, id uint) (*models.Notification, error)

	PendingOutbox(ctx context.Context, limit int) ([]models.NotificationOutbox, error)
	DeliverOutbox(ctx context.Context, entry *models.NotificationOutbox) (*models.Notification, error)
	FailOutbox(ctx context.Context, id uint, cause error, dead bool) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a gorm-backed NotificationRepository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// ListForRecipient returns the newest notifications first with sender summaries.
func (r *notificationRepository) ListForRecipient(ctx context.Context, recipientID uint, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := r.db.WithContext(ctx).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.attachSenders(ctx, notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) attachSenders(ctx context.Context, notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.SenderID)
	}

	var senders []models.User
	if err := r.db.WithContext(ctx).Select("id", "username", "avatar", "role").Where("id IN ?", ids).Find(&senders).Error; err != nil {
		return models.NewInternalError(err)
	}
	byID := make(map[uint]*models.User, len(senders))
	for i := range senders {
		byID[senders[i].ID] = &senders[i]
	}
	for i := range notifications {
		notifications[i].Sender = byID[notifications[i].SenderID].Summary()
	}
	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&n).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err, "Notification", nil)
	}
	return &n, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	res := r.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return nil, models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, models.NewNotFoundError("Notification", nil)
	}
	return r.GetByID(ctx, id)
}

// PendingOutbox returns the oldest unprocessed outbox rows.
func (r *notificationRepository) PendingOutbox(ctx context.Context, limit int) ([]models.NotificationOutbox, error) {
	var entries []models.NotificationOutbox
	err := r.db.WithContext(ctx).
		Where("processed_at IS NULL").
		Order("id ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return entries, nil
}

// DeliverOutbox creates the notification and marks the entry processed atomically. A
// row already processed by a concurrent dispatcher yields a nil notification.
func (r *notificationRepository) DeliverOutbox(ctx context.Context, entry *models.NotificationOutbox) (*models.Notification, error) {
	var created *models.Notification

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n := entry.Notification()
		if err := tx.Create(n).Error; err != nil {
			return err
		}

		now := time.Now()
		res := tx.Model(&models.NotificationOutbox{}).
			Where("id = ? AND processed_at IS NULL", entry.ID).
			Updates(map[string]interface{}{
				"processed_at":    now,
				"notification_id": n.ID,
				"attempts":        gorm.Expr("attempts + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Claimed elsewhere: roll back our copy.
			return errAlreadyProcessed
		}
		created = n
		return nil
	})
	if errors.Is(err, errAlreadyProcessed) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return created, nil
}

// FailOutbox records a failed attempt. dead marks the entry processed so it is not retried.
func (r *notificationRepository) FailOutbox(ctx context.Context, id uint, cause error, dead bool) error {
	fields := map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": truncateRunes(cause.Error(), maxLastError),
	}
	if dead {
		fields["processed_at"] = time.Now()
	}
	err := r.db.WithContext(ctx).Model(&models.NotificationOutbox{}).Where("id = ?", id).Updates(fields).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
