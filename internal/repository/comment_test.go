package repository

import (
	"context"
	"testing"

	"craveconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	notifications := NewNotificationRepository(db)
	ctx := context.Background()

	chef := createUser(t, db, "chef", models.RoleChef)
	fan := createUser(t, db, "fan", models.RoleFoodie)
	recipe := createRecipe(t, db, chef.ID, "Paella")

	notify := func(r *models.Recipe) *models.NotificationOutbox {
		return &models.NotificationOutbox{RecipientID: r.ChefID, SenderID: fan.ID, Type: models.NotificationComment, Message: "commented"}
	}

	first := &models.Comment{RecipeID: recipe.ID, UserID: fan.ID, Text: "first"}
	require.NoError(t, repo.Create(ctx, first, notify))
	second := &models.Comment{RecipeID: recipe.ID, UserID: fan.ID, Text: "second"}
	require.NoError(t, repo.Create(ctx, second, nil))

	hidden := &models.Comment{RecipeID: recipe.ID, UserID: fan.ID, Text: "hidden"}
	require.NoError(t, repo.Create(ctx, hidden, nil))
	_, err := repo.SetApproved(ctx, hidden.ID, false)
	require.NoError(t, err)

	comments, err := repo.ListByRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "fan", comments[0].Author.Username)

	assert.Len(t, pendingOutbox(t, notifications), 1)

	pending, total, err := repo.List(ctx, CommentListParams{PendingOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, pending, 1)
	assert.Equal(t, "Paella", pending[0].RecipeTitle)

	n, err := repo.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCommentRepository_CreateOnMissingRecipe(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	fan := createUser(t, db, "fan", models.RoleFoodie)

	err := repo.Create(context.Background(), &models.Comment{RecipeID: 77, UserID: fan.ID, Text: "?"}, nil)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestCommentRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	chef := createUser(t, db, "chef", models.RoleChef)
	recipe := createRecipe(t, db, chef.ID, "Stew")

	c := &models.Comment{RecipeID: recipe.ID, UserID: chef.ID, Text: "own"}
	require.NoError(t, repo.Create(ctx, c, nil))
	require.NoError(t, db.Create(&models.CommentLike{CommentID: c.ID, UserID: chef.ID}).Error)

	require.NoError(t, repo.Delete(ctx, c.ID))
	assert.Equal(t, 404, models.StatusForError(repo.Delete(ctx, c.ID)))

	var likes int64
	require.NoError(t, db.Model(&models.CommentLike{}).Count(&likes).Error)
	assert.Zero(t, likes)
}
