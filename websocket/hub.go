package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"

	"github.com/omerfman/yeni-nesil-sinif/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Hub fans persisted notifications out to the recipient's live connection,
// when there is one. Users without an open socket simply fetch the rows
// later; nothing here is load-bearing for correctness.
type Hub struct {
	clientsMu sync.RWMutex
	clients   map[uuid.UUID]*websocket.Conn

	register   chan *Client
	unregister chan *Client
	outbound   chan models.Notification
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		outbound:   make(chan models.Notification, 64),
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

// Push queues a notification for delivery. Non-blocking: if the hub is
// backed up the notification is dropped here and read from the store later.
func (h *Hub) Push(n models.Notification) {
	select {
	case h.outbound <- n:
	default:
		log.Printf("Notification hub full, dropping push for user %s", n.UserID)
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			h.clients[client.UserID] = client.Conn
			h.clientsMu.Unlock()
			log.Printf("Notification client registered: %s", client.UserID)
		case client := <-h.unregister:
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.clientsMu.Unlock()
			log.Printf("Notification client unregistered: %s", client.UserID)
		case notif := <-h.outbound:
			h.clientsMu.RLock()
			conn, ok := h.clients[notif.UserID]
			h.clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(notif); err != nil {
				log.Printf("Error pushing notification to %s: %v", notif.UserID, err)
				conn.Close()
				h.clientsMu.Lock()
				if cur, ok := h.clients[notif.UserID]; ok && cur == conn {
					delete(h.clients, notif.UserID)
				}
				h.clientsMu.Unlock()
			}
		}
	}
}
