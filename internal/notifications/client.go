package notifications

import (
	"log/slog"
	"sync"
	"time"

	"craveconnect/internal/middleware"
	"craveconnect/internal/observability"

	"github.com/gofiber/websocket/v2"
	"github.com/rs/xid"
	"golang.org/x/time/rate"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 16384

	sendBufferSize = 256
)

// WSHub is the owner a Client reports frames and disconnects to.
type WSHub interface {
	UnregisterClient(c *Client)
	Name() string
}

// Client is one relay connection.
type Client struct {
	Hub WSHub

	// The websocket connection. Nil in tests that drive the relay directly.
	Conn *websocket.Conn

	// Buffered channel of outbound messages.
	Send chan []byte

	// SessionID is generated by the server for every connection.
	SessionID string

	// UserID is the token subject, zero for anonymous sockets.
	UserID uint

	// Callback for handling incoming messages
	IncomingHandler func(*Client, []byte)

	limiter   *rate.Limiter
	closeOnce sync.Once
}

// NewClient creates a new Client instance
func NewClient(hub WSHub, conn *websocket.Conn, userID uint, limiter *rate.Limiter) *Client {
	return &Client{
		Hub:       hub,
		Conn:      conn,
		SessionID: xid.New().String(),
		UserID:    userID,
		Send:      make(chan []byte, sendBufferSize),
		limiter:   limiter,
	}
}

// Allow reports whether the connection may emit another throttled event now.
func (c *Client) Allow() bool {
	return c.limiter == nil || c.limiter.Allow()
}

// ReadPump pumps messages from the websocket connection to the hub.
func (c *Client) ReadPump() {
	defer func() {
		c.Hub.UnregisterClient(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error { _ = c.Conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				middleware.Logger.Warn("relay read failed",
					slog.String("session_id", c.SessionID),
					slog.String("error", err.Error()),
				)
			}
			break
		}

		if c.IncomingHandler != nil {
			c.IncomingHandler(c, message)
		}
	}
}

// WritePump pumps messages from the hub to the websocket connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				_ = c.Conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues a frame without blocking. A full buffer drops the frame.
func (c *Client) TrySend(message []byte) bool {
	defer func() {
		if r := recover(); r != nil {
			observability.RelayBackpressureDrops.WithLabelValues("closed").Inc()
		}
	}()

	select {
	case c.Send <- message:
		return true
	default:
		observability.RelayBackpressureDrops.WithLabelValues("full").Inc()
		middleware.Logger.Warn("relay send buffer full, dropped frame",
			slog.String("session_id", c.SessionID),
			slog.String("hub", c.Hub.Name()),
		)
		return false
	}
}

// close stops the write pump. Safe to call more than once.
func (c *Client) close() {
	c.closeOnce.Do(func() { close(c.Send) })
}
