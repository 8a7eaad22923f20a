package models

import "time"

// CookOff is an admin-run cooking challenge.
type CookOff struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	Title        string               `gorm:"size:120;not null" json:"title"`
	Description  string               `gorm:"size:1000;not null" json:"description"`
	Theme        string               `gorm:"size:120;not null" json:"theme"`
	StartDate    time.Time            `gorm:"not null" json:"startDate"`
	EndDate      time.Time            `gorm:"not null" json:"endDate"`
	IsActive     bool                 `gorm:"not null;default:true" json:"isActive"`
	WinnerID     *uint                `json:"winnerId,omitempty"`
	Winner       *UserSummary         `gorm:"-" json:"winner,omitempty"`
	Participants []CookOffParticipant `gorm:"foreignKey:CookOffID;constraint:OnDelete:CASCADE" json:"participants"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// CookOffParticipant is one chef's entry in a cook-off.
type CookOffParticipant struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	CookOffID uint         `gorm:"not null;uniqueIndex:idx_cookoff_recipe" json:"cookOffId"`
	UserID    uint         `gorm:"not null;index" json:"userId"`
	RecipeID  uint         `gorm:"not null;uniqueIndex:idx_cookoff_recipe" json:"recipeId"`
	Votes     int          `gorm:"not null;default:0" json:"votes"`
	User      *UserSummary `gorm:"-" json:"user,omitempty"`
	// RecipeTitle and RecipeImage are filled on listings.
	RecipeTitle string    `gorm:"-" json:"recipeTitle,omitempty"`
	RecipeImage string    `gorm:"-" json:"recipeImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
