package validation

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	"craveconnect/internal/models"
)

const (
	MaxRecipeTitleLength       = 100
	MaxRecipeDescriptionLength = 1000
	MaxCommentLength           = 500
	MaxTags                    = 20
	MinRating                  = 1
	MaxRating                  = 5
)

// ErrRatingRange is returned for scores outside 1-5.
var ErrRatingRange = errors.New("rating must be between 1 and 5")

// ValidateRating checks the score bounds.
func ValidateRating(value int) error {
	if value < MinRating || value > MaxRating {
		return ErrRatingRange
	}
	return nil
}

// ValidateRecipe checks every user-supplied recipe field.
func ValidateRecipe(r *models.Recipe) error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return fmt.Errorf("please add a recipe title")
	}
	if utf8.RuneCountInString(title) > MaxRecipeTitleLength {
		return fmt.Errorf("title cannot exceed %d characters", MaxRecipeTitleLength)
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("please add a description")
	}
	if utf8.RuneCountInString(r.Description) > MaxRecipeDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxRecipeDescriptionLength)
	}
	if err := ValidateImageURL(r.Image); err != nil {
		return err
	}
	if !slices.Contains(models.Cuisines, r.Cuisine) {
		return fmt.Errorf("invalid cuisine %q", r.Cuisine)
	}
	if !slices.Contains(models.Categories, r.Category) {
		return fmt.Errorf("invalid category %q", r.Category)
	}
	if !slices.Contains(models.Difficulties, r.Difficulty) {
		return fmt.Errorf("invalid difficulty %q", r.Difficulty)
	}
	if r.PrepTime < 0 || r.CookTime < 0 {
		return fmt.Errorf("prep and cook time cannot be negative")
	}
	if r.Servings < 1 {
		return fmt.Errorf("servings must be at least 1")
	}
	if len(r.Ingredients) == 0 {
		return fmt.Errorf("at least one ingredient is required")
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" || strings.TrimSpace(ing.Quantity) == "" {
			return fmt.Errorf("ingredient %d needs a name and quantity", i+1)
		}
	}
	if len(r.Instructions) == 0 {
		return fmt.Errorf("at least one instruction is required")
	}
	for i, step := range r.Instructions {
		if strings.TrimSpace(step.Description) == "" {
			return fmt.Errorf("instruction %d needs a description", i+1)
		}
	}
	if len(r.Tags) > MaxTags {
		return fmt.Errorf("a recipe can have at most %d tags", MaxTags)
	}
	return nil
}

// ValidateImageURL requires an absolute http(s) URI.
func ValidateImageURL(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("please add a recipe image")
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("image must be an http or https URL")
	}
	return nil
}

// ValidateComment checks comment text.
func ValidateComment(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("comment text is required")
	}
	if utf8.RuneCountInString(text) > MaxCommentLength {
		return fmt.Errorf("comment cannot exceed %d characters", MaxCommentLength)
	}
	return nil
}
