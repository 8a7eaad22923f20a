package database

import "craveconnect/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models, in
// dependency order.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Badge{},
		&models.Follow{},
		&models.Recipe{},
		&models.Bookmark{},
		&models.RecipeLike{},
		&models.RecipeRating{},
		&models.Comment{},
		&models.CommentLike{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.NotificationOutbox{},
		&models.CookOff{},
		&models.CookOffParticipant{},
	}
}
