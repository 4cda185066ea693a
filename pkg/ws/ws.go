// Package ws provides WebSocket support using gorilla/websocket.
//
// The app runs a single hub for order notifications. Each client is tagged
// with the authenticated user and role at upgrade time, so the notification
// dispatcher can target admins (new orders) or a single customer (status
// changes) without every client seeing every event.
//
//	var NotifyHub = ws.NewHub()
//	func init() { go NotifyHub.Run() }
//
//	// In a route handler, after auth:
//	ws.Upgrade(w, r, NotifyHub, userID, role)
//
//	// From anywhere:
//	NotifyHub.SendToRole("admin", payload)
//	NotifyHub.SendToUser(42, payload)
package ws

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/epicurean/epicurean/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins by default — restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SetCheckOrigin replaces the default (allow-all) origin checker.
func SetCheckOrigin(fn func(r *http.Request) bool) {
	upgrader.CheckOrigin = fn
}

// ─── Client ───────────────────────────────────────────────────────────────────

// Client represents a single connected WebSocket client.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID uint
	role   string
}

// readPump pumps messages from the WebSocket connection to the hub.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("ws: unexpected close", "error", err)
			}
			break
		}
		c.hub.Inbound <- Message{Client: c, Data: msg}
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Send queues a message to be sent to this specific client.
func (c *Client) Send(data []byte) {
	select {
	case c.send <- data:
	default:
		// Buffer full — drop message.
	}
}

// UserID returns the user this client authenticated as (0 for guests).
func (c *Client) UserID() uint { return c.userID }

// Role returns the role the client connected with.
func (c *Client) Role() string { return c.role }

// ─── Hub ──────────────────────────────────────────────────────────────────────

// Message is an inbound message received from a client.
type Message struct {
	Client *Client
	Data   []byte
}

type targeted struct {
	userID uint   // non-zero: deliver to this user only
	role   string // non-empty: deliver to this role only
	data   []byte
}

// Hub maintains all active WebSocket connections and handles delivery.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan []byte  // send to all connected clients
	Inbound    chan Message // messages received from clients
	direct     chan targeted
	register   chan *Client
	unregister chan *Client
	// OnMessage is called for every inbound message (optional).
	OnMessage func(hub *Hub, msg Message)
}

// NewHub creates a new Hub. Call hub.Run() in a goroutine at startup.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte, 256),
		Inbound:    make(chan Message, 256),
		direct:     make(chan targeted, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SendToUser queues data for every connection belonging to userID.
func (h *Hub) SendToUser(userID uint, data []byte) {
	h.direct <- targeted{userID: userID, data: data}
}

// SendToRole queues data for every connection with the given role.
func (h *Hub) SendToRole(role string, data []byte) {
	h.direct <- targeted{role: role, data: data}
}

// Run starts the hub event loop. Must be run in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			logger.Info("ws: client connected",
				"user", client.userID, "role", client.role, "total", len(h.clients))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				logger.Info("ws: client disconnected", "total", len(h.clients))
			}

		case msg := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, msg)
			}

		case t := <-h.direct:
			for client := range h.clients {
				if t.userID != 0 && client.userID != t.userID {
					continue
				}
				if t.role != "" && client.role != t.role {
					continue
				}
				h.deliver(client, t.data)
			}

		case msg := <-h.Inbound:
			if h.OnMessage != nil {
				h.OnMessage(h, msg)
			}
		}
	}
}

func (h *Hub) deliver(client *Client, msg []byte) {
	select {
	case client.send <- msg:
	default:
		close(client.send)
		delete(h.clients, client)
	}
}

// ClientCount returns the number of currently connected clients.
func (h *Hub) ClientCount() int { return len(h.clients) }

// ─── Upgrade ─────────────────────────────────────────────────────────────────

// Upgrade upgrades an HTTP connection to a WebSocket and registers the
// resulting client with the given hub, tagged with the caller's identity.
func Upgrade(w http.ResponseWriter, r *http.Request, hub *Hub, userID uint, role string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ws: upgrade failed", "error", err)
		return
	}
	client := &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		userID: userID,
		role:   role,
	}
	hub.register <- client
	go client.writePump()
	go client.readPump()
}
