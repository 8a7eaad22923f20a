package server

import (
	"craveconnect/internal/featureflags"
	"craveconnect/internal/notifications"
	"craveconnect/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetChatMessages handles GET /api/chat/messages
// @Summary Chat history
// @Description The newest messages of a room in chronological order
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param room query string false "Room" default(general)
// @Param limit query int false "Maximum messages" default(50)
// @Success 200 {object} Response{data=[]models.ChatMessage}
// @Router /chat/messages [get]
func (s *Server) GetChatMessages(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", service.DefaultChatHistory)
	messages, err := s.chatService.History(c.UserContext(), c.Query("room"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, messages)
}

// SendChatMessage handles POST /api/chat/messages. When chat_http_relay is on the stored
// message is also pushed to live members of the room.
// @Summary Post a chat message
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SendMessageInput true "Message"
// @Success 201 {object} Response{data=models.ChatMessage}
// @Failure 400 {object} models.ErrorResponse
// @Router /chat/messages [post]
func (s *Server) SendChatMessage(c *fiber.Ctx) error {
	var in service.SendMessageInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	caller := actor(c)
	msg, err := s.chatService.SendMessage(c.UserContext(), caller, in)
	if err != nil {
		return respondError(c, err)
	}

	if s.relay != nil && s.featureFlags.Enabled(featureflags.ChatHTTPRelay, caller.ID) {
		s.relay.BroadcastRoom(msg.Room, notifications.EventChatMessage, msg)
	}
	return respondCreated(c, msg)
}

// DeleteChatMessage handles DELETE /api/chat/messages/:id
// @Summary Delete a chat message
// @Description Soft delete by the author or an admin
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} Response
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /chat/messages/{id} [delete]
func (s *Server) DeleteChatMessage(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.chatService.DeleteMessage(c.UserContext(), actor(c), id); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Message deleted successfully")
}
