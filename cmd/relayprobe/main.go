// Package main provides a load and smoke testing tool for the realtime relay.
//
// Each client logs in, redeems its own websocket ticket, announces itself with user:join,
// joins a chat room and sends chat:message frames until the run ends.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
)

// Metrics tracks the test results
type Metrics struct {
	ConnectionsAttempted int64
	ConnectionsSuccess   int64
	ConnectionsFailed    int64
	MessagesSent         int64
	MessagesReceived     int64
	PresenceUpdates      int64
	Errors               int64
}

var metrics Metrics

// frame is the relay wire envelope.
type frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// envelope is the REST success body.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type session struct {
	Token    string `json:"token"`
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func main() {
	host := flag.String("host", "localhost:5000", "API server host")
	email := flag.String("email", "kitchen@craveconnect.local", "Test user email")
	password := flag.String("password", "password123", "Test user password")
	room := flag.String("room", "general", "Chat room to join")
	clients := flag.Int("clients", 20, "Number of concurrent clients")
	interval := flag.Duration("interval", 5*time.Second, "Delay between messages per client")
	duration := flag.Duration("duration", 30*time.Second, "Test duration")
	flag.Parse()

	log.Printf("🚀 Starting relay probe")
	log.Printf("Target: %s", *host)
	log.Printf("Clients: %d in room %q", *clients, *room)
	log.Printf("Duration: %v", *duration)

	me, err := login(*host, *email, *password)
	if err != nil {
		log.Fatalf("❌ Login failed: %v", err)
	}
	log.Printf("✅ Logged in as %s", me.Username)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	var wg sync.WaitGroup
	stopChan := make(chan struct{})

	for i := 0; i < *clients; i++ {
		wg.Add(1)
		go runClient(*host, *room, me, i, *interval, stopChan, &wg)
		time.Sleep(50 * time.Millisecond) // Stagger connections to allow ticket issuance
	}

	select {
	case <-time.After(*duration):
		log.Println("⏱️  Test duration reached")
	case <-interrupt:
		log.Println("🛑 Interrupted by user")
	}

	close(stopChan)
	log.Println("Waiting for clients to disconnect...")
	wg.Wait()

	printMetrics()
}

func post(host, path, token string, payload interface{}) (*envelope, error) {
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("http://%s%s", host, path), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s failed with status %d: %s", path, resp.StatusCode, env.Message)
	}
	return &env, nil
}

func login(host, email, password string) (*session, error) {
	env, err := post(host, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var s session
	if err := json.Unmarshal(env.Data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func getTicket(host, token string) (string, error) {
	env, err := post(host, "/api/auth/ws-ticket", token, nil)
	if err != nil {
		return "", err
	}
	var result struct {
		Ticket string `json:"ticket"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		return "", err
	}
	return result.Ticket, nil
}

func runClient(host, room string, me *session, id int, interval time.Duration, stopChan <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	atomic.AddInt64(&metrics.ConnectionsAttempted, 1)

	// Tickets are single use, so every connection redeems its own.
	ticket, err := getTicket(host, me.Token)
	if err != nil {
		log.Printf("client %d: %v", id, err)
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		atomic.AddInt64(&metrics.Errors, 1)
		return
	}

	u := url.URL{Scheme: "ws", Host: host, Path: "/api/ws", RawQuery: "ticket=" + url.QueryEscape(ticket)}

	c, resp, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		atomic.AddInt64(&metrics.ConnectionsFailed, 1)
		atomic.AddInt64(&metrics.Errors, 1)
		return
	}
	if resp != nil && resp.Body != nil {
		defer func() { _ = resp.Body.Close() }()
	}
	defer func() { _ = c.Close() }()

	atomic.AddInt64(&metrics.ConnectionsSuccess, 1)

	// gorilla allows one concurrent writer, which is this goroutine.
	for _, f := range []frame{
		{Event: "user:join", Data: map[string]interface{}{"userId": me.ID, "username": me.Username, "avatar": me.Avatar}},
		{Event: "chat:join", Data: room},
	} {
		if err := c.WriteJSON(f); err != nil {
			atomic.AddInt64(&metrics.Errors, 1)
			return
		}
	}

	go func() {
		for {
			var in frame
			if err := c.ReadJSON(&in); err != nil {
				return
			}
			switch in.Event {
			case "users:active":
				atomic.AddInt64(&metrics.PresenceUpdates, 1)
			case "chat:message":
				atomic.AddInt64(&metrics.MessagesReceived, 1)
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopChan:
			_ = c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case <-ticker.C:
			err := c.WriteJSON(frame{Event: "chat:message", Data: map[string]interface{}{
				"room":     room,
				"username": me.Username,
				"message":  fmt.Sprintf("Probe message from client %d", id),
			}})
			if err != nil {
				atomic.AddInt64(&metrics.Errors, 1)
				return
			}
			atomic.AddInt64(&metrics.MessagesSent, 1)
		}
	}
}

func printMetrics() {
	log.Println("\n📊 Test Results")
	log.Println("===============")
	log.Printf("Connections Attempted: %d", atomic.LoadInt64(&metrics.ConnectionsAttempted))
	log.Printf("Connections Successful: %d", atomic.LoadInt64(&metrics.ConnectionsSuccess))
	log.Printf("Connections Failed: %d", atomic.LoadInt64(&metrics.ConnectionsFailed))
	log.Printf("Messages Sent: %d", atomic.LoadInt64(&metrics.MessagesSent))
	log.Printf("Messages Received: %d", atomic.LoadInt64(&metrics.MessagesReceived))
	log.Printf("Presence Updates: %d", atomic.LoadInt64(&metrics.PresenceUpdates))
	log.Printf("Total Errors: %d", atomic.LoadInt64(&metrics.Errors))
}
