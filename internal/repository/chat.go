package repository

import (
	"context"

	"craveconnect/internal/models"

	"gorm.io/gorm"
)

// ChatRepository persists chat room history.
type ChatRepository interface {
	Create(ctx context.Context, msg *models.ChatMessage) error
	GetByID(ctx context.Context, id uint) (*models.ChatMessage, error)
	ListByRoom(ctx context.Context, room string, limit int) ([]models.ChatMessage, error)
	SoftDelete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository returns a gorm-backed ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) GetByID(ctx context.Context, id uint) (*models.ChatMessage, error) {
	var msg models.ChatMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, translate(err, "Message", nil)
	}
	return &msg, nil
}

// ListByRoom returns the newest limit non-deleted messages of room in ascending order.
func (r *chatRepository) ListByRoom(ctx context.Context, room string, limit int) ([]models.ChatMessage, error) {
	messages := []models.ChatMessage{}
	err := r.db.WithContext(ctx).
		Where("room = ? AND is_deleted = ?", room, false).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (r *chatRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.ChatMessage{}).Where("id = ?", id).Update("is_deleted", true)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Message", nil)
	}
	return nil
}

func (r *chatRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.ChatMessage{}).Where("is_deleted = ?", false).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}
