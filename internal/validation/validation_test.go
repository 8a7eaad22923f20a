package validation

import (
	"strings"
	"testing"
	"time"

	"craveconnect/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "chef_maria", false},
		{"Exactly Min Length", "abc", false},
		{"Exactly Max Length", strings.Repeat("a", 30), false},
		{"Too Short", "ab", true},
		{"Too Long", strings.Repeat("a", 31), true},
		{"Spaces", "chef maria", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmailAndPassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateEmail("maria@example.com"))
	assert.Error(t, ValidateEmail("maria@example"))
	assert.Error(t, ValidateEmail("not an email"))
	assert.Equal(t, "maria@example.com", NormalizeEmail("  Maria@Example.COM "))

	assert.NoError(t, ValidatePassword("secret"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)))
}

func TestValidateSignupRole(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateSignupRole(models.RoleFoodie))
	assert.NoError(t, ValidateSignupRole(models.RoleChef))
	assert.Error(t, ValidateSignupRole(models.RoleAdmin))
	assert.Error(t, ValidateSignupRole("Owner"))
	assert.NoError(t, ValidateRole(models.RoleAdmin))
}

func TestValidateRating(t *testing.T) {
	t.Parallel()

	for _, v := range []int{1, 2, 3, 4, 5} {
		assert.NoError(t, ValidateRating(v))
	}
	assert.ErrorIs(t, ValidateRating(0), ErrRatingRange)
	assert.ErrorIs(t, ValidateRating(6), ErrRatingRange)
}

func validRecipe() *models.Recipe {
	return &models.Recipe{
		Title:        "Margherita Pizza",
		Description:  "Classic Neapolitan pizza",
		Image:        "https://images.example.com/pizza.jpg",
		Cuisine:      "Italian",
		Category:     "Dinner",
		Difficulty:   "Medium",
		Servings:     4,
		Ingredients:  []models.Ingredient{{Name: "Flour", Quantity: "500g"}},
		Instructions: []models.Instruction{{Step: 1, Description: "Knead the dough"}},
	}
}

func TestValidateRecipe(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(r *models.Recipe)
		wantErr bool
	}{
		{"Valid", func(r *models.Recipe) {}, false},
		{"Missing Title", func(r *models.Recipe) { r.Title = "  " }, true},
		{"Long Title", func(r *models.Recipe) { r.Title = strings.Repeat("t", 101) }, true},
		{"Relative Image", func(r *models.Recipe) { r.Image = "/pizza.jpg" }, true},
		{"Unknown Cuisine", func(r *models.Recipe) { r.Cuisine = "Martian" }, true},
		{"Unknown Category", func(r *models.Recipe) { r.Category = "Brunch" }, true},
		{"Unknown Difficulty", func(r *models.Recipe) { r.Difficulty = "Extreme" }, true},
		{"Zero Servings", func(r *models.Recipe) { r.Servings = 0 }, true},
		{"Negative Prep", func(r *models.Recipe) { r.PrepTime = -1 }, true},
		{"No Ingredients", func(r *models.Recipe) { r.Ingredients = nil }, true},
		{"Blank Ingredient", func(r *models.Recipe) { r.Ingredients = []models.Ingredient{{Name: "Salt"}} }, true},
		{"No Instructions", func(r *models.Recipe) { r.Instructions = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRecipe()
			tt.mutate(r)
			err := ValidateRecipe(r)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestChatRules(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "general", NormalizeRoom("  "))
	assert.Equal(t, "desserts", NormalizeRoom(" desserts "))
	assert.Error(t, ValidateRoom(strings.Repeat("r", MaxRoomNameLength+1)))
	assert.NoError(t, ValidateChatMessage("hello"))
	assert.Error(t, ValidateChatMessage("   "))
	assert.Error(t, ValidateChatMessage(strings.Repeat("m", MaxChatMessageLength+1)))
}

func TestValidateCookOff(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	c := &models.CookOff{Title: "Spring", Description: "Greens", Theme: "Vegetables", StartDate: start, EndDate: start.Add(7 * 24 * time.Hour), IsActive: true}
	assert.NoError(t, ValidateCookOff(c))
	assert.True(t, CookOffOpen(c, start.Add(time.Hour)))
	assert.False(t, CookOffOpen(c, start.Add(8*24*time.Hour)))

	c.EndDate = start
	assert.Error(t, ValidateCookOff(c))
}
