package repository

import (
	"strings"
	"testing"

	"craveconnect/internal/models"
	"craveconnect/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory sqlite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.SQLiteDB(t)
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		Role:     role,
		Avatar:   models.DefaultAvatar(username),
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createRecipe(t *testing.T, db *gorm.DB, chefID uint, title string, mutate ...func(*models.Recipe)) *models.Recipe {
	t.Helper()
	r := &models.Recipe{
		Title:        title,
		Description:  title + " description",
		Image:        "https://img.example.com/" + strings.ReplaceAll(strings.ToLower(title), " ", "-") + ".jpg",
		Cuisine:      "Italian",
		Category:     "Dinner",
		Ingredients:  datatypes.JSONSlice[models.Ingredient]{{Name: "Tomato", Quantity: "2"}},
		Instructions: datatypes.JSONSlice[models.Instruction]{{Step: 1, Description: "Cook"}},
		Servings:     2,
		Difficulty:   "Easy",
		ChefID:       chefID,
		IsApproved:   true,
		Tags:         datatypes.JSONSlice[string]{"quick"},
	}
	for _, m := range mutate {
		m(r)
	}
	require.NoError(t, db.Create(r).Error)
	// Zero-valued flags are replaced by column defaults on insert; write them explicitly.
	require.NoError(t, db.Model(r).UpdateColumns(map[string]interface{}{
		"is_approved": r.IsApproved,
		"is_trending": r.IsTrending,
		"is_featured": r.IsFeatured,
	}).Error)
	return r
}
