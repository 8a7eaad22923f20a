package server

import "github.com/gofiber/fiber/v2"

// GetNotifications handles GET /api/users/:id/notifications
// @Summary Own notifications
// @Description Newest first with sender summaries
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=[]models.Notification}
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id}/notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	list, err := s.notificationService.List(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, list)
}

// GetUnreadCount handles GET /api/users/:id/notifications/unread-count
// @Summary Unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} Response{data=object{count=int}}
// @Failure 403 {object} models.ErrorResponse
// @Router /users/{id}/notifications/unread-count [get]
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	count, err := s.notificationService.UnreadCount(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, fiber.Map{"count": count})
}

// MarkNotificationRead handles PUT /api/users/notifications/:id/read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} Response{data=models.Notification}
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/notifications/{id}/read [put]
func (s *Server) MarkNotificationRead(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return nil
	}
	n, err := s.notificationService.MarkRead(c.UserContext(), actor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondOK(c, n)
}
