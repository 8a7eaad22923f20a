package service

import (
	"context"
	"strings"

	"craveconnect/internal/models"
	"craveconnect/internal/repository"
	"craveconnect/internal/validation"
)

const (
	DefaultChatHistory = 50
	MaxChatHistory     = 100
)

// ChatService persists chat room messages. Live delivery is the relay's job.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
}

// SendMessageInput is the input for posting a chat message.
type SendMessageInput struct {
	Message string `json:"message"`
	Room    string `json:"room"`
}

// NewChatService returns a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository) *ChatService {
	return &ChatService{chatRepo: chatRepo, userRepo: userRepo}
}

// History returns up to limit of the room's latest messages, oldest first.
func (s *ChatService) History(ctx context.Context, room string, limit int) ([]models.ChatMessage, error) {
	room = validation.NormalizeRoom(room)
	if err := validation.ValidateRoom(room); err != nil {
		return nil, invalid(err)
	}
	if limit <= 0 {
		limit = DefaultChatHistory
	}
	if limit > MaxChatHistory {
		limit = MaxChatHistory
	}
	return s.chatRepo.ListByRoom(ctx, room, limit)
}

// SendMessage stores a message with the sender's current username and avatar.
func (s *ChatService) SendMessage(ctx context.Context, actor Actor, in SendMessageInput) (*models.ChatMessage, error) {
	if err := validation.ValidateChatMessage(in.Message); err != nil {
		return nil, invalid(err)
	}
	room := validation.NormalizeRoom(in.Room)
	if err := validation.ValidateRoom(room); err != nil {
		return nil, invalid(err)
	}

	sender, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		UserID:   sender.ID,
		Username: sender.Username,
		Avatar:   sender.Avatar,
		Message:  strings.TrimSpace(in.Message),
		Room:     room,
	}
	if err := s.chatRepo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteMessage soft-deletes a message. Only its author or a moderator may delete it.
func (s *ChatService) DeleteMessage(ctx context.Context, actor Actor, id uint) error {
	msg, err := s.chatRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanActOn(msg.UserID) {
		return models.NewForbiddenError("You can only delete your own messages")
	}
	return s.chatRepo.SoftDelete(ctx, id)
}
