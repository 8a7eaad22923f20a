package models

import "time"

// DefaultChatRoom is used when a message or subscription names no room.
const DefaultChatRoom = "general"

// ChatMessage is a persisted chat line. Username and Avatar are snapshots taken at send time.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	Username  string    `gorm:"size:30;not null" json:"username"`
	Avatar    string    `json:"avatar"`
	Message   string    `gorm:"size:1000;not null" json:"message"`
	Room      string    `gorm:"size:64;not null;default:general;index:idx_chat_room_created,priority:1" json:"room"`
	IsDeleted bool      `gorm:"not null;default:false" json:"isDeleted"`
	CreatedAt time.Time `gorm:"index:idx_chat_room_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
