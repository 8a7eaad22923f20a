package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"craveconnect/internal/config"
	"craveconnect/internal/models"
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutes_RequireModerate(t *testing.T) {
	ts := newTestServer(t)
	_, chef := ts.createUser(t, "chef", models.RoleChef)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodGet, "/api/admin/users"},
		{http.MethodPut, "/api/admin/users/1/role"},
		{http.MethodDelete, "/api/admin/users/1"},
		{http.MethodGet, "/api/admin/comments"},
		{http.MethodPost, "/api/admin/cookoff"},
		{http.MethodPost, "/api/admin/reset-weekly-points"},
		{http.MethodGet, "/api/admin/feature-flags"},
	} {
		status, _ := ts.do(t, route.method, route.path, nil, chef)
		assert.Equal(t, fiber.StatusForbidden, status, route.path)

		status, _ = ts.do(t, route.method, route.path, nil, "")
		assert.Equal(t, fiber.StatusUnauthorized, status, route.path)
	}
}

func TestAdminStats(t *testing.T) {
	ts := newTestServer(t)
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)
	_, chef := ts.createUser(t, "chef", models.RoleChef)
	ts.publish(t, chef, "Stats Soup")

	status, env := ts.do(t, http.MethodGet, "/api/admin/stats", nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	stats := decode[service.AdminStats](t, env.Data)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(1), stats.TotalRecipes)
	assert.Len(t, stats.RecentUsers, 2)
}

func TestAdminUsers(t *testing.T) {
	ts := newTestServer(t)
	adminUser, admin := ts.createUser(t, "admin", models.RoleAdmin)
	foodie, foodieToken := ts.createUser(t, "promoted", models.RoleFoodie)
	ts.createUser(t, "another", models.RoleFoodie)

	status, env := ts.do(t, http.MethodGet, "/api/admin/users?role=Foodie&limit=1", nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, int64(2), env.Pagination.Total)
	assert.Len(t, decode[[]models.User](t, env.Data), 1)

	_, env = ts.do(t, http.MethodGet, "/api/admin/users?search=promo", nil, admin)
	found := decode[[]models.User](t, env.Data)
	require.Len(t, found, 1)
	assert.Equal(t, foodie.ID, found[0].ID)

	rolePath := fmt.Sprintf("/api/admin/users/%d/role", foodie.ID)
	status, env = ts.do(t, http.MethodPut, rolePath, map[string]string{"role": "Overlord"}, admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Role must be one of Foodie, Chef or Admin", env.Message)

	status, env = ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/users/%d/role", adminUser.ID),
		map[string]string{"role": "Foodie"}, admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "You cannot change your own role", env.Message)

	// The promoted user gains Publish on their next request.
	status, _ = ts.do(t, http.MethodPost, "/api/recipes", validRecipeBody("Too Early"), foodieToken)
	require.Equal(t, fiber.StatusForbidden, status)
	status, env = ts.do(t, http.MethodPut, rolePath, map[string]string{"role": "Chef"}, admin)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, models.RoleChef, decode[models.User](t, env.Data).Role)
	ts.publish(t, foodieToken, "First Dish")
}

func TestAdminDeleteUser_KeepsChat(t *testing.T) {
	ts := newTestServer(t)
	adminUser, admin := ts.createUser(t, "admin", models.RoleAdmin)
	chef, chefToken := ts.createUser(t, "leaving", models.RoleChef)
	recipe := ts.publish(t, chefToken, "Last Supper")
	ts.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/comments", recipe.ID), map[string]string{"text": "mine"}, chefToken)
	ts.do(t, http.MethodPost, "/api/chat/messages", map[string]string{"message": "bye all"}, chefToken)

	status, env := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", adminUser.ID), nil, admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "You cannot delete your own account", env.Message)

	status, env = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", chef.ID), nil, admin)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.Equal(t, "User deleted successfully", env.Message)

	var recipes, comments, messages int64
	require.NoError(t, ts.db.Model(&models.Recipe{}).Count(&recipes).Error)
	require.NoError(t, ts.db.Model(&models.Comment{}).Count(&comments).Error)
	require.NoError(t, ts.db.Model(&models.ChatMessage{}).Count(&messages).Error)
	assert.Zero(t, recipes)
	assert.Zero(t, comments)
	assert.Equal(t, int64(1), messages)

	status, _ = ts.do(t, http.MethodGet, "/api/auth/me", nil, chefToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAdminComments(t *testing.T) {
	ts := newTestServer(t)
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)
	_, chef := ts.createUser(t, "chef", models.RoleChef)
	recipe := ts.publish(t, chef, "Curry")
	_, env := ts.do(t, http.MethodPost, fmt.Sprintf("/api/recipes/%d/comments", recipe.ID), map[string]string{"text": "meh"}, chef)
	comment := decode[models.Comment](t, env.Data)

	status, env := ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/comments/%d/approve", comment.ID),
		map[string]bool{"isApproved": false}, admin)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	assert.False(t, decode[models.Comment](t, env.Data).IsApproved)

	_, env = ts.do(t, http.MethodGet, "/api/admin/comments?pending=true", nil, admin)
	pending := decode[[]models.Comment](t, env.Data)
	require.Len(t, pending, 1)
	assert.Equal(t, "Curry", pending[0].RecipeTitle)

	// Hidden comments drop out of the public thread.
	_, env = ts.do(t, http.MethodGet, fmt.Sprintf("/api/recipes/%d/comments", recipe.ID), nil, "")
	assert.Empty(t, decode[[]models.Comment](t, env.Data))

	status, _ = ts.do(t, http.MethodPut, fmt.Sprintf("/api/admin/comments/%d/approve", comment.ID), nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	_, env = ts.do(t, http.MethodGet, "/api/admin/comments?pending=true", nil, admin)
	assert.Empty(t, decode[[]models.Comment](t, env.Data))

	status, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/comments/%d", comment.ID), nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/comments/%d", comment.ID), nil, admin)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestAdminCookOff(t *testing.T) {
	ts := newTestServer(t)
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)
	chef, chefToken := ts.createUser(t, "contender", models.RoleChef)
	recipe := ts.publish(t, chefToken, "Champion Chili")

	start := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	status, env := ts.do(t, http.MethodPost, "/api/admin/cookoff", map[string]interface{}{
		"title":       "Chili Week",
		"description": "Bring the heat",
		"theme":       "Spicy",
		"startDate":   start,
		"endDate":     start.Add(7 * 24 * time.Hour),
	}, admin)
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	cookOff := decode[models.CookOff](t, env.Data)
	assert.True(t, cookOff.IsActive)

	status, env = ts.do(t, http.MethodPost, "/api/admin/cookoff", map[string]interface{}{
		"title": "Backwards", "description": "x", "theme": "y",
		"startDate": start, "endDate": start.Add(-time.Hour),
	}, admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "End date must be after start date", env.Message)

	entryPath := fmt.Sprintf("/api/admin/cookoff/%d/participants", cookOff.ID)
	status, env = ts.do(t, http.MethodPost, entryPath, map[string]uint{"recipeId": recipe.ID}, admin)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	entered := decode[models.CookOff](t, env.Data)
	require.Len(t, entered.Participants, 1)
	assert.Equal(t, chef.ID, entered.Participants[0].UserID)

	status, _ = ts.do(t, http.MethodPost, entryPath, map[string]uint{"recipeId": recipe.ID}, admin)
	assert.Equal(t, fiber.StatusConflict, status)

	status, env = ts.do(t, http.MethodPost, fmt.Sprintf("/api/admin/cookoff/%d/winner", cookOff.ID),
		map[string]uint{"userId": chef.ID}, admin)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	closed := decode[models.CookOff](t, env.Data)
	require.NotNil(t, closed.WinnerID)
	assert.Equal(t, chef.ID, *closed.WinnerID)
	assert.False(t, closed.IsActive)

	status, env = ts.do(t, http.MethodPost, entryPath, map[string]uint{"recipeId": recipe.ID}, admin)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Cook-off is closed", env.Message)

	_, env = ts.do(t, http.MethodGet, "/api/admin/cookoff", nil, admin)
	assert.Len(t, decode[[]models.CookOff](t, env.Data), 1)
}

func TestAdminResetWeeklyPoints(t *testing.T) {
	ts := newTestServer(t)
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)
	chef, chefToken := ts.createUser(t, "chef", models.RoleChef)
	ts.publish(t, chefToken, "Weekly Special")

	status, env := ts.do(t, http.MethodPost, "/api/admin/reset-weekly-points", nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Weekly points reset successfully", env.Message)

	var reloaded models.User
	require.NoError(t, ts.db.First(&reloaded, chef.ID).Error)
	assert.Zero(t, reloaded.WeeklyPoints)
	assert.Equal(t, 10, reloaded.TotalPoints)
}

func TestAdminFeatureFlags(t *testing.T) {
	ts := newTestServer(t, func(c *config.Config) {
		c.FeatureFlags = "chat_http_relay=on,beta_menu=on"
	})
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)

	status, env := ts.do(t, http.MethodGet, "/api/admin/feature-flags", nil, admin)
	require.Equal(t, fiber.StatusOK, status)
	payload := decode[struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}](t, env.Data)
	assert.Equal(t, map[string]string{"chat_http_relay": "on", "beta_menu": "on"}, payload.Raw)
	assert.True(t, payload.Evaluated["chat_http_relay"])
	assert.True(t, payload.Evaluated["live_notifications"])
	assert.True(t, payload.Evaluated["beta_menu"])
	assert.False(t, payload.Evaluated["recipe_premoderation"])
}
