package server

import (
	"errors"
	"log/slog"

	"craveconnect/internal/middleware"
	"craveconnect/internal/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RequireUpgrade rejects plain HTTP requests to websocket routes.
func RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// RelayHandler serves GET /api/ws. The socket is anonymous unless a ticket or token
// resolved a caller, in which case joins are pinned to that user.
func (s *Server) RelayHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(localUserID).(uint)

		client, err := s.relay.Register(conn, userID)
		if err != nil {
			if !errors.Is(err, notifications.ErrRelayClosed) {
				middleware.Logger.Error("relay register failed", slog.String("error", err.Error()))
			}
			_ = conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	})
}
