package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"craveconnect/internal/middleware"
	"craveconnect/internal/observability"
	"craveconnect/internal/validation"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/time/rate"
)

// Inbound and outbound relay event names.
const (
	EventUserJoin      = "user:join"
	EventUsersActive   = "users:active"
	EventUserJoined    = "user:joined"
	EventUserLeft      = "user:left"
	EventChatJoin      = "chat:join"
	EventChatMessage   = "chat:message"
	EventChatTyping    = "chat:typing"
	EventNotification  = "notification:new"
	EventServerClosing = "server:shutdown"
)

// passThrough maps client events that are rebroadcast verbatim to everyone.
var passThrough = map[string]string{
	"recipe:like":       "recipe:liked",
	"recipe:rate":       "recipe:rated",
	"recipe:new":        "recipe:created",
	"comment:new":       "comment:added",
	"notification:send": EventNotification,
}

// Envelope is the relay wire frame.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Encode builds a wire frame.
func Encode(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}

// RelayOption tunes a Relay.
type RelayOption func(*Relay)

// WithMessageRate sets the per-connection token bucket for chat and typing events.
func WithMessageRate(perSecond float64, burst int) RelayOption {
	return func(r *Relay) {
		r.limit = rate.Limit(perSecond)
		r.burst = burst
	}
}

// Relay fans chat and presence events out to the websocket connections of this process.
type Relay struct {
	presence *PresenceRegistry

	mu      sync.RWMutex
	clients map[*Client]struct{}
	rooms   map[string]map[*Client]struct{}
	closed  bool

	limit rate.Limit
	burst int
	now   func() time.Time
}

// NewRelay returns a relay that records presence in registry.
func NewRelay(registry *PresenceRegistry, opts ...RelayOption) *Relay {
	r := &Relay{
		presence: registry,
		clients:  make(map[*Client]struct{}),
		rooms:    make(map[string]map[*Client]struct{}),
		limit:    rate.Limit(5),
		burst:    10,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns a human-readable identifier for this hub.
func (r *Relay) Name() string { return "relay" }

// Presence exposes the registry the relay writes to.
func (r *Relay) Presence() *PresenceRegistry { return r.presence }

// ErrRelayClosed is returned when a connection arrives after Shutdown.
var ErrRelayClosed = errors.New("relay is shutting down")

// Register attaches a connection. userID is the verified token subject or zero.
func (r *Relay) Register(conn *websocket.Conn, userID uint) (*Client, error) {
	client := NewClient(r, conn, userID, rate.NewLimiter(r.limit, r.burst))
	client.IncomingHandler = r.Handle

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, ErrRelayClosed
	}
	r.clients[client] = struct{}{}
	n := len(r.clients)
	r.mu.Unlock()

	observability.RelayConnections.Set(float64(n))
	middleware.Logger.Debug("relay client connected",
		slog.String("session_id", client.SessionID),
		slog.Uint64("user_id", uint64(userID)),
	)
	return client, nil
}

// UnregisterClient detaches a connection, announcing the departure if it had joined.
func (r *Relay) UnregisterClient(c *Client) {
	r.mu.Lock()
	if _, ok := r.clients[c]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.clients, c)
	for name, members := range r.rooms {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, name)
		}
	}
	n := len(r.clients)
	r.mu.Unlock()

	c.close()
	observability.RelayConnections.Set(float64(n))

	entry, joined := r.presence.Remove(c.SessionID)
	r.broadcast(EventUsersActive, r.presence.Snapshot(), nil)
	if joined {
		r.broadcast(EventUserLeft, map[string]string{"username": entry.Username}, c)
	}
	middleware.Logger.Debug("relay client disconnected", slog.String("session_id", c.SessionID))
}

// Handle dispatches one inbound frame. Malformed and unknown frames are dropped.
func (r *Relay) Handle(c *Client, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		r.drop(c, "malformed", "invalid")
		return
	}

	switch env.Event {
	case EventUserJoin:
		r.join(c, env.Data)
	case EventChatJoin:
		r.joinRoom(c, env.Data)
	case EventChatMessage:
		r.sendMessage(c, env.Data)
	case EventChatTyping:
		r.typing(c, env.Data)
	default:
		out, ok := passThrough[env.Event]
		if !ok {
			r.drop(c, env.Event, "unknown")
			return
		}
		r.broadcastRaw(out, env.Data, nil)
		observability.RelayEvents.WithLabelValues(env.Event, "ok").Inc()
	}
}

func (r *Relay) drop(c *Client, event, reason string) {
	observability.RelayEvents.WithLabelValues(event, reason).Inc()
	middleware.Logger.Debug("relay frame dropped",
		slog.String("session_id", c.SessionID),
		slog.String("event", event),
		slog.String("reason", reason),
	)
}

func (r *Relay) join(c *Client, data json.RawMessage) {
	var entry PresenceEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		r.drop(c, EventUserJoin, "invalid")
		return
	}
	if c.UserID != 0 {
		entry.UserID = c.UserID
	}

	_, rejoin := r.presence.Get(c.SessionID)
	r.presence.Put(c.SessionID, entry)

	r.broadcast(EventUsersActive, r.presence.Snapshot(), nil)
	if !rejoin {
		r.broadcast(EventUserJoined, map[string]string{
			"username": entry.Username,
			"avatar":   entry.Avatar,
		}, c)
	}
	observability.RelayEvents.WithLabelValues(EventUserJoin, "ok").Inc()
}

// roomFrom accepts either a bare room name or an object with a room field.
func roomFrom(data json.RawMessage) string {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return validation.NormalizeRoom(name)
	}
	var obj struct {
		Room string `json:"room"`
	}
	_ = json.Unmarshal(data, &obj)
	return validation.NormalizeRoom(obj.Room)
}

func (r *Relay) joinRoom(c *Client, data json.RawMessage) {
	room := roomFrom(data)
	if err := validation.ValidateRoom(room); err != nil {
		r.drop(c, EventChatJoin, "invalid")
		return
	}

	r.mu.Lock()
	if _, ok := r.clients[c]; ok {
		members, exists := r.rooms[room]
		if !exists {
			members = make(map[*Client]struct{})
			r.rooms[room] = members
		}
		members[c] = struct{}{}
	}
	r.mu.Unlock()
	observability.RelayEvents.WithLabelValues(EventChatJoin, "ok").Inc()
}

func (r *Relay) sendMessage(c *Client, data json.RawMessage) {
	if !c.Allow() {
		r.drop(c, EventChatMessage, "throttled")
		return
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil || payload == nil {
		r.drop(c, EventChatMessage, "invalid")
		return
	}

	room, _ := payload["room"].(string)
	room = validation.NormalizeRoom(room)
	payload["timestamp"] = r.now().UTC().Format(time.RFC3339)

	r.broadcastRoom(room, EventChatMessage, payload, nil)
	observability.RelayEvents.WithLabelValues(EventChatMessage, "ok").Inc()
}

func (r *Relay) typing(c *Client, data json.RawMessage) {
	if !c.Allow() {
		r.drop(c, EventChatTyping, "throttled")
		return
	}
	var in struct {
		Room     string `json:"room"`
		Username string `json:"username"`
		IsTyping bool   `json:"isTyping"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		r.drop(c, EventChatTyping, "invalid")
		return
	}

	r.broadcastRoom(validation.NormalizeRoom(in.Room), EventChatTyping, map[string]interface{}{
		"username": in.Username,
		"isTyping": in.IsTyping,
	}, c)
	observability.RelayEvents.WithLabelValues(EventChatTyping, "ok").Inc()
}

// broadcast sends to every connection except skip.
func (r *Relay) broadcast(event string, data interface{}, skip *Client) {
	frame, err := Encode(event, data)
	if err != nil {
		middleware.Logger.Error("relay encode failed", slog.String("event", event), slog.String("error", err.Error()))
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.clients {
		if c != skip {
			c.TrySend(frame)
		}
	}
}

func (r *Relay) broadcastRaw(event string, data json.RawMessage, skip *Client) {
	if len(data) == 0 {
		data = json.RawMessage("null")
	}
	frame, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.clients {
		if c != skip {
			c.TrySend(frame)
		}
	}
}

// broadcastRoom sends to the room's members except skip.
func (r *Relay) broadcastRoom(room, event string, data interface{}, skip *Client) {
	frame, err := Encode(event, data)
	if err != nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.rooms[room] {
		if c != skip {
			c.TrySend(frame)
		}
	}
}

// BroadcastRoom sends an event to every member of room. Messages persisted over REST use
// it to reach sessions that joined the room.
func (r *Relay) BroadcastRoom(room, event string, data interface{}) {
	r.broadcastRoom(validation.NormalizeRoom(room), event, data, nil)
}

// SendToUser delivers a prepared frame to every session of the user on this process.
// Only sessions opened with a ticket for userID match; a claimed join entry never does.
func (r *Relay) SendToUser(userID uint, frame []byte) int {
	if userID == 0 {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	sent := 0
	for c := range r.clients {
		if c.UserID == userID && c.TrySend(frame) {
			sent++
		}
	}
	return sent
}

// StartWiring subscribes to the per-user notification channels and forwards payloads to
// the recipient's sessions.
func (r *Relay) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartPatternSubscriber(ctx, func(channel, payload string) {
		userID, ok := ParseUserChannel(channel)
		if !ok {
			middleware.Logger.Warn("invalid notification channel", slog.String("channel", channel))
			return
		}
		r.SendToUser(userID, []byte(payload))
	})
}

// Shutdown tells every connection the server is going away, closes them and clears presence.
func (r *Relay) Shutdown(_ context.Context) error {
	frame, _ := Encode(EventServerClosing, map[string]string{"reason": "Server shutting down"})

	r.mu.Lock()
	r.closed = true
	clients := r.clients
	r.clients = make(map[*Client]struct{})
	r.rooms = make(map[string]map[*Client]struct{})
	r.mu.Unlock()

	for c := range clients {
		c.TrySend(frame)
		c.close()
	}
	r.presence.Reset()
	observability.RelayConnections.Set(0)
	middleware.Logger.Info("relay shut down", slog.Int("connections", len(clients)))
	return nil
}
