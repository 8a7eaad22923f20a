package models

import "time"

// Comment is a reply left on a recipe.
type Comment struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	RecipeID   uint         `gorm:"not null;index" json:"recipeId"`
	Recipe     *Recipe      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"-"`
	UserID     uint         `gorm:"not null;index" json:"userId"`
	User       *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Text       string       `gorm:"size:500;not null" json:"text"`
	IsApproved bool         `gorm:"not null;default:true;index" json:"isApproved"`
	LikesCount int          `gorm:"not null;default:0" json:"likesCount"`
	Author     *UserSummary `gorm:"-" json:"user,omitempty"`
	// RecipeTitle is filled on moderation listings.
	RecipeTitle string    `gorm:"->;-:migration" json:"recipeTitle,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CommentLike is one user's like on a comment.
type CommentLike struct {
	CommentID uint      `gorm:"primaryKey;autoIncrement:false" json:"commentId"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
