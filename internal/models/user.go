// Package models contains data structures for the application's domain models.
package models

import (
	"net/url"
	"time"
)

// User is a registered CraveConnect account.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:30;uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string     `gorm:"not null" json:"-"`
	Role         Role       `gorm:"size:16;not null;default:Foodie;index" json:"role"`
	Avatar       string     `json:"avatar"`
	Bio          string     `gorm:"size:500" json:"bio"`
	WeeklyPoints int        `gorm:"not null;default:0" json:"weeklyPoints"`
	TotalPoints  int        `gorm:"not null;default:0" json:"totalPoints"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	LastActive   *time.Time `json:"lastActive,omitempty"`
	Badges       []Badge    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"badges,omitempty"`
	// Follower/following counts are computed at query time.
	FollowersCount int64     `gorm:"-" json:"followersCount"`
	FollowingCount int64     `gorm:"-" json:"followingCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DefaultAvatar is the generated avatar used when a user supplies none.
func DefaultAvatar(username string) string {
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(username)
}

// Capabilities resolves the user's permission set.
func (u *User) Capabilities() Capabilities {
	return u.Role.Capabilities()
}

// Summary is the public subset of a user embedded in other resources.
func (u *User) Summary() *UserSummary {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Avatar: u.Avatar, Role: u.Role}
}

// UserSummary is the public author/actor view of a user.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
	Role     Role   `json:"role,omitempty"`
}

// Badge is an achievement shown on a profile.
type Badge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;index" json:"-"`
	Name     string    `gorm:"size:64;not null" json:"name"`
	Icon     string    `gorm:"size:32" json:"icon"`
	EarnedAt time.Time `json:"earnedAt"`
}

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false" json:"followerId"`
	FolloweeID uint      `gorm:"primaryKey;autoIncrement:false;index" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Bookmark records a recipe saved by a user.
type Bookmark struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	RecipeID  uint      `gorm:"primaryKey;autoIncrement:false;index" json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}
