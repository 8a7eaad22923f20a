package repository

import (
	"context"
	"testing"

	"craveconnect/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &models.User{Username: "ada", Email: "ada@example.com", Password: "x", Role: models.RoleFoodie}
	require.NoError(t, repo.Create(ctx, u))

	dup := &models.User{Username: "ada", Email: "other@example.com", Password: "x", Role: models.RoleFoodie}
	err := repo.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, 409, models.StatusForError(err))
	assert.Equal(t, "Username or email already exists", err.(*models.AppError).Message)
}

func TestUserRepository_Lookups(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	created := createUser(t, db, "grace", models.RoleChef)

	byEmail, err := repo.GetByEmail(ctx, "GRACE@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, created.ID, byEmail.ID)

	missing, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)

	byName, err := repo.GetByUsername(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = repo.GetByID(ctx, 9999)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestUserRepository_UpdateKeepsPassword(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	u := createUser(t, db, "linus", models.RoleFoodie)

	updated, err := repo.Update(context.Background(), u.ID, map[string]interface{}{"bio": "kernel cook"})
	require.NoError(t, err)
	assert.Equal(t, "kernel cook", updated.Bio)

	var stored models.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, "hash", stored.Password)
}

func TestUserRepository_ToggleFollow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	notifications := NewNotificationRepository(db)
	ctx := context.Background()

	a := createUser(t, db, "alice", models.RoleFoodie)
	b := createUser(t, db, "bob", models.RoleChef)
	intent := &models.NotificationOutbox{RecipientID: b.ID, SenderID: a.ID, Type: models.NotificationFollow, Message: "alice started following you"}

	following, count, err := repo.ToggleFollow(ctx, a.ID, b.ID, intent)
	require.NoError(t, err)
	assert.True(t, following)
	assert.Equal(t, int64(1), count)

	followers, followingCount, err := repo.FollowCounts(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), followers)
	assert.Equal(t, int64(1), followingCount)

	following, count, err = repo.ToggleFollow(ctx, a.ID, b.ID, &models.NotificationOutbox{RecipientID: b.ID, SenderID: a.ID, Type: models.NotificationFollow, Message: "again"})
	require.NoError(t, err)
	assert.False(t, following)
	assert.Equal(t, int64(0), count)
	assert.Len(t, pendingOutbox(t, notifications), 1, "unfollow must not notify")

	_, _, err = repo.ToggleFollow(ctx, a.ID, 4242, nil)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestUserRepository_Bookmarks(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	chef := createUser(t, db, "chef", models.RoleChef)
	fan := createUser(t, db, "fan", models.RoleFoodie)
	recipe := createRecipe(t, db, chef.ID, "Gnocchi")

	on, err := repo.ToggleBookmark(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, on)

	saved, err := repo.ListBookmarks(ctx, fan.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Gnocchi", saved[0].Title)
	assert.Equal(t, "chef", saved[0].ChefSummary.Username)

	on, err = repo.ToggleBookmark(ctx, fan.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = repo.ToggleBookmark(ctx, fan.ID, 999)
	assert.Equal(t, 404, models.StatusForError(err))
}

func TestUserRepository_TopChefsAndReset(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	low := createUser(t, db, "low", models.RoleChef)
	high := createUser(t, db, "high", models.RoleAdmin)
	foodie := createUser(t, db, "eater", models.RoleFoodie)
	require.NoError(t, db.Model(low).Updates(map[string]interface{}{"weekly_points": 10, "total_points": 100}).Error)
	require.NoError(t, db.Model(high).Updates(map[string]interface{}{"weekly_points": 30, "total_points": 30}).Error)
	require.NoError(t, db.Model(foodie).Updates(map[string]interface{}{"weekly_points": 99}).Error)

	chefs, err := repo.TopChefs(ctx)
	require.NoError(t, err)
	require.Len(t, chefs, 2)
	assert.Equal(t, "high", chefs[0].Username)
	assert.Equal(t, "low", chefs[1].Username)

	n, err := repo.ResetWeeklyPoints(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	var stored models.User
	require.NoError(t, db.First(&stored, low.ID).Error)
	assert.Zero(t, stored.WeeklyPoints)
	assert.Equal(t, 100, stored.TotalPoints)
}

func TestUserRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	createUser(t, db, "marco", models.RoleChef)
	createUser(t, db, "maria", models.RoleFoodie)
	createUser(t, db, "zed", models.RoleChef)

	chefs, total, err := repo.List(ctx, UserListParams{Role: models.RoleChef})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, chefs, 2)

	found, total, err := repo.List(ctx, UserListParams{Search: "MAR"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, found, 2)
}

func TestUserRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	recipes := NewRecipeRepository(db)
	ctx := context.Background()

	victim := createUser(t, db, "victim", models.RoleChef)
	other := createUser(t, db, "other", models.RoleChef)
	own := createRecipe(t, db, victim.ID, "Victim Dish")
	foreign := createRecipe(t, db, other.ID, "Other Dish")

	_, err := recipes.ToggleLike(ctx, foreign.ID, victim.ID, nil)
	require.NoError(t, err)
	_, err = recipes.UpsertRating(ctx, foreign.ID, victim.ID, 1, nil)
	require.NoError(t, err)
	_, err = recipes.UpsertRating(ctx, foreign.ID, other.ID, 5, nil)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{RecipeID: foreign.ID, UserID: victim.ID, Text: "meh"}).Error)
	require.NoError(t, db.Create(&models.Comment{RecipeID: own.ID, UserID: other.ID, Text: "nice"}).Error)
	require.NoError(t, db.Create(&models.ChatMessage{UserID: victim.ID, Username: "victim", Message: "hi", Room: "general"}).Error)

	require.NoError(t, repo.Delete(ctx, victim.ID))

	var n int64
	require.NoError(t, db.Model(&models.Recipe{}).Where("chef_id = ?", victim.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Comment{}).Count(&n).Error)
	assert.Zero(t, n, "both the victim's comments and comments on their recipes are removed")
	require.NoError(t, db.Model(&models.ChatMessage{}).Where("user_id = ?", victim.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n, "chat history is kept")

	var survivor models.Recipe
	require.NoError(t, db.First(&survivor, foreign.ID).Error)
	assert.Equal(t, 0, survivor.LikesCount)
	assert.Equal(t, 1, survivor.TotalRatings)
	assert.Equal(t, 5.0, survivor.AverageRating)

	assert.Equal(t, 404, models.StatusForError(repo.Delete(ctx, victim.ID)))
}
