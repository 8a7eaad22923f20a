package service

import (
	"context"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
)

// NotificationListLimit bounds a recipient's notification listing.
const NotificationListLimit = 50

type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the recipient's newest notifications. Users may only read their own.
func (s *NotificationService) List(ctx context.Context, actor Actor, recipientID uint) ([]models.Notification, error) {
	if actor.ID != recipientID {
		return nil, models.NewForbiddenError("You can only view your own notifications")
	}
	return s.notificationRepo.ListForRecipient(ctx, recipientID, NotificationListLimit)
}

func (s *NotificationService) UnreadCount(ctx context.Context, actor Actor, recipientID uint) (int64, error) {
	if actor.ID != recipientID {
		return 0, models.NewForbiddenError("You can only view your own notifications")
	}
	return s.notificationRepo.CountUnread(ctx, recipientID)
}

// MarkRead flags one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor Actor, id uint) (*models.Notification, error) {
	n, err := s.notificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.RecipientID != actor.ID {
		return nil, models.NewForbiddenError("Not authorized to update this notification")
	}
	return s.notificationRepo.MarkRead(ctx, id)
}
