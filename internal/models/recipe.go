package models

import (
	"time"

	"gorm.io/datatypes"
)

// Cuisine values accepted on recipes.
var Cuisines = []string{
	"Italian", "Chinese", "Indian", "Mexican", "Japanese", "Thai",
	"French", "Mediterranean", "American", "Korean", "Other",
}

// Categories accepted on recipes.
var Categories = []string{
	"Breakfast", "Lunch", "Dinner", "Dessert", "Snack",
	"Appetizer", "Beverage", "Salad", "Soup",
}

// Difficulties accepted on recipes.
var Difficulties = []string{"Easy", "Medium", "Hard"}

// Ingredient is a name/quantity pair.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// Instruction is one ordered preparation step.
type Instruction struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// Recipe is a dish published by a chef.
type Recipe struct {
	ID            uint                             `gorm:"primaryKey" json:"id"`
	Title         string                           `gorm:"size:100;not null" json:"title"`
	Description   string                           `gorm:"size:1000;not null" json:"description"`
	Image         string                           `gorm:"not null" json:"image"`
	Cuisine       string                           `gorm:"size:32;not null;index" json:"cuisine"`
	Category      string                           `gorm:"size:32;not null;index" json:"category"`
	Ingredients   datatypes.JSONSlice[Ingredient]  `json:"ingredients"`
	Instructions  datatypes.JSONSlice[Instruction] `json:"instructions"`
	PrepTime      int                              `gorm:"not null;default:0" json:"prepTime"`
	CookTime      int                              `gorm:"not null;default:0" json:"cookTime"`
	Servings      int                              `gorm:"not null;default:1" json:"servings"`
	Difficulty    string                           `gorm:"size:16;not null;default:Medium;index" json:"difficulty"`
	ChefID        uint                             `gorm:"not null;index" json:"chefId"`
	Chef          *User                            `gorm:"foreignKey:ChefID;constraint:OnDelete:CASCADE" json:"-"`
	AverageRating float64                          `gorm:"not null;default:0" json:"averageRating"`
	TotalRatings  int                              `gorm:"not null;default:0" json:"totalRatings"`
	LikesCount    int                              `gorm:"not null;default:0" json:"likesCount"`
	Views         int                              `gorm:"not null;default:0" json:"views"`
	IsTrending    bool                             `gorm:"not null;default:false;index" json:"isTrending"`
	IsFeatured    bool                             `gorm:"not null;default:false;index" json:"isFeatured"`
	IsApproved    bool                             `gorm:"not null;default:true;index" json:"isApproved"`
	Tags          datatypes.JSONSlice[string]      `json:"tags"`
	CreatedAt     time.Time                        `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time                        `json:"updatedAt"`

	// Populated on detail reads.
	ChefSummary *UserSummary   `gorm:"-" json:"chef,omitempty"`
	Ratings     []RecipeRating `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ratings,omitempty"`
	LikedBy     []uint         `gorm:"-" json:"likes,omitempty"`
}

// RecipeLike is one user's like on a recipe. The composite key keeps the set duplicate free.
type RecipeLike struct {
	RecipeID  uint      `gorm:"primaryKey;autoIncrement:false" json:"recipeId"`
	UserID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecipeRating is one user's 1-5 score on a recipe. At most one row per user per recipe.
type RecipeRating struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	RecipeID  uint         `gorm:"not null;uniqueIndex:idx_recipe_rating_user" json:"recipeId"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_recipe_rating_user;index" json:"userId"`
	Value     int          `gorm:"not null" json:"rating"`
	User      *User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Rater     *UserSummary `gorm:"-" json:"user,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// RatingSummary is the aggregate returned after a rating mutation.
type RatingSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Liked bool   `json:"liked"`
	Likes []uint `json:"likes"`
}
