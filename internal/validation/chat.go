package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"craveconnect/internal/models"
)

const (
	MaxChatMessageLength = 1000
	MaxRoomNameLength    = 64
)

// NormalizeRoom trims a room label and falls back to the default room.
func NormalizeRoom(room string) string {
	room = strings.TrimSpace(room)
	if room == "" {
		return models.DefaultChatRoom
	}
	return room
}

// ValidateRoom bounds room labels.
func ValidateRoom(room string) error {
	if utf8.RuneCountInString(room) > MaxRoomNameLength {
		return fmt.Errorf("room name cannot exceed %d characters", MaxRoomNameLength)
	}
	return nil
}

// ValidateChatMessage checks message text.
func ValidateChatMessage(message string) error {
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("message is required")
	}
	if utf8.RuneCountInString(message) > MaxChatMessageLength {
		return fmt.Errorf("message cannot exceed %d characters", MaxChatMessageLength)
	}
	return nil
}

// ValidateCookOff checks the required cook-off fields and date order.
func ValidateCookOff(c *models.CookOff) error {
	if strings.TrimSpace(c.Title) == "" || strings.TrimSpace(c.Description) == "" || strings.TrimSpace(c.Theme) == "" {
		return fmt.Errorf("title, description and theme are required")
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required")
	}
	if !c.EndDate.After(c.StartDate) {
		return fmt.Errorf("end date must be after start date")
	}
	return nil
}

// CookOffOpen reports whether entries are still accepted at t.
func CookOffOpen(c *models.CookOff, t time.Time) bool {
	return c.IsActive && c.WinnerID == nil && t.Before(c.EndDate)
}
