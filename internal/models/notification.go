package models

import "time"

// NotificationType tags what kind of social action produced a notification.
type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationRating  NotificationType = "rating"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
)

// Notification is a durable per-recipient record of another user's action.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index:idx_notification_recipient_created,priority:1" json:"recipientId"`
	SenderID    uint             `gorm:"not null" json:"senderId"`
	Type        NotificationType `gorm:"size:16;not null" json:"type"`
	Message     string           `gorm:"size:500;not null" json:"message"`
	Link        string           `gorm:"size:255" json:"link"`
	IsRead      bool             `gorm:"not null;default:false" json:"isRead"`
	Sender      *UserSummary     `gorm:"-" json:"sender,omitempty"`
	CreatedAt   time.Time        `gorm:"index:idx_notification_recipient_created,priority:2" json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NotificationOutbox is a notification intent committed alongside the action that caused it.
// Pending while ProcessedAt is nil.
type NotificationOutbox struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	RecipientID    uint             `gorm:"not null" json:"recipientId"`
	SenderID       uint             `gorm:"not null" json:"senderId"`
	Type           NotificationType `gorm:"size:16;not null" json:"type"`
	Message        string           `gorm:"size:500;not null" json:"message"`
	Link           string           `gorm:"size:255" json:"link"`
	Attempts       int              `gorm:"not null;default:0" json:"attempts"`
	LastError      string           `gorm:"size:500" json:"lastError,omitempty"`
	NotificationID *uint            `json:"notificationId,omitempty"`
	ProcessedAt    *time.Time       `gorm:"index" json:"processedAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// TableName keeps the outbox table singular.
func (NotificationOutbox) TableName() string {
	return "notification_outbox"
}

// Notification builds the record the outbox entry describes.
func (o *NotificationOutbox) Notification() *Notification {
	return &Notification{
		RecipientID: o.RecipientID,
		SenderID:    o.SenderID,
		Type:        o.Type,
		Message:     o.Message,
		Link:        o.Link,
	}
}
