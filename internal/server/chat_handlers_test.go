package server

import (
	"fmt"
	"net/http"
	"testing"

	"craveconnect/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatMessages(t *testing.T) {
	ts := newTestServer(t)
	_, alice := ts.createUser(t, "alice", models.RoleFoodie)
	_, bob := ts.createUser(t, "bob", models.RoleFoodie)

	for i := 1; i <= 3; i++ {
		status, env := ts.do(t, http.MethodPost, "/api/chat/messages",
			map[string]string{"message": fmt.Sprintf("M%d", i)}, alice)
		require.Equal(t, fiber.StatusCreated, status, env.Message)
	}
	status, _ := ts.do(t, http.MethodPost, "/api/chat/messages",
		map[string]string{"message": "elsewhere", "room": "desserts"}, bob)
	require.Equal(t, fiber.StatusCreated, status)

	status, env := ts.do(t, http.MethodGet, "/api/chat/messages?limit=2", nil, bob)
	require.Equal(t, fiber.StatusOK, status)
	history := decode[[]models.ChatMessage](t, env.Data)
	require.Len(t, history, 2)
	assert.Equal(t, "M2", history[0].Message)
	assert.Equal(t, "M3", history[1].Message)
	assert.Equal(t, "alice", history[1].Username)
	assert.Equal(t, models.DefaultChatRoom, history[1].Room)

	_, env = ts.do(t, http.MethodGet, "/api/chat/messages?room=desserts", nil, bob)
	desserts := decode[[]models.ChatMessage](t, env.Data)
	require.Len(t, desserts, 1)
	assert.Equal(t, "elsewhere", desserts[0].Message)

	status, _ = ts.do(t, http.MethodGet, "/api/chat/messages", nil, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, env = ts.do(t, http.MethodPost, "/api/chat/messages", map[string]string{"message": "  "}, bob)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, models.CodeValidation, env.Code)
}

func TestDeleteChatMessage(t *testing.T) {
	ts := newTestServer(t)
	_, author := ts.createUser(t, "author", models.RoleFoodie)
	_, other := ts.createUser(t, "other", models.RoleFoodie)
	_, admin := ts.createUser(t, "admin", models.RoleAdmin)

	_, env := ts.do(t, http.MethodPost, "/api/chat/messages", map[string]string{"message": "oops"}, author)
	first := decode[models.ChatMessage](t, env.Data)
	_, env = ts.do(t, http.MethodPost, "/api/chat/messages", map[string]string{"message": "spam"}, author)
	second := decode[models.ChatMessage](t, env.Data)

	status, _ := ts.do(t, http.MethodDelete, fmt.Sprintf("/api/chat/messages/%d", first.ID), nil, other)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, env = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/chat/messages/%d", first.ID), nil, author)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Message deleted successfully", env.Message)
	status, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/api/chat/messages/%d", second.ID), nil, admin)
	require.Equal(t, fiber.StatusOK, status)

	_, env = ts.do(t, http.MethodGet, "/api/chat/messages", nil, other)
	assert.Empty(t, decode[[]models.ChatMessage](t, env.Data))

	// Soft delete keeps the row.
	var stored int64
	require.NoError(t, ts.db.Model(&models.ChatMessage{}).Count(&stored).Error)
	assert.Equal(t, int64(2), stored)
}
