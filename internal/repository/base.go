// Package repository implements the data access layer for the application.
package repository

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"craveconnect/internal/database"
	"craveconnect/internal/models"

	"gorm.io/gorm"
)

// OutboxBuilder returns the notification to enqueue for a mutation on recipe, or nil
// when no one should be notified.
type OutboxBuilder func(recipe *models.Recipe) *models.NotificationOutbox

// translate maps gorm errors to AppErrors. Already-typed errors pass through.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	if database.IsUniqueViolation(err) {
		return models.NewConflictError(resource + " already exists")
	}
	return models.NewInternalError(err)
}

// enqueue writes intent to the outbox inside tx. A nil intent is a no-op.
func enqueue(tx *gorm.DB, intent *models.NotificationOutbox) error {
	if intent == nil {
		return nil
	}
	if err := tx.Create(intent).Error; err != nil {
		return fmt.Errorf("enqueue notification: %w", err)
	}
	return nil
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// truncateRunes cuts s to at most max characters without splitting a multi-byte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
