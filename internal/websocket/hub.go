package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/Rohit6800/UniStay/internal/models"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeBookingRequested MessageType = "booking_requested"
	MessageTypeBookingDecided   MessageType = "booking_decided"
)

// Message represents a WebSocket message
type Message struct {
	Type      MessageType  `json:"type"`
	Order     models.Order `json:"order"`
	Message   string       `json:"message,omitempty"`
	Timestamp int64        `json:"timestamp"`

	recipients []string
}

// Hub fans order events out to the connections of the users involved.
// Each user may hold several connections (tabs).
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and returns when ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			slog.Debug("websocket client registered", "userId", client.userID, "connections", len(h.clients[client.userID]))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				slog.Error("websocket message encoding failed", "error", err)
				continue
			}

			h.mu.Lock()
			for _, userID := range message.recipients {
				for client := range h.clients[userID] {
					select {
					case client.send <- data:
					default:
						// slow consumer
						h.remove(client)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove drops client; the caller holds h.mu
func (h *Hub) remove(client *Client) {
	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	slog.Debug("websocket client unregistered", "userId", client.userID, "remaining", len(clients))
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.remove(client)
		}
	}
}

func (h *Hub) publish(ctx context.Context, msg *Message) error {
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// BookingRequested tells the listing's dealer about a new request and echoes
// it to the student
func (h *Hub) BookingRequested(ctx context.Context, order models.Order) error {
	return h.publish(ctx, &Message{
		Type:       MessageTypeBookingRequested,
		Order:      order,
		Message:    "New booking request for " + order.RoomTitle,
		Timestamp:  time.Now().UnixMilli(),
		recipients: []string{order.DealerID, order.StudentID},
	})
}

// BookingDecided tells both parties that the dealer confirmed or cancelled
func (h *Hub) BookingDecided(ctx context.Context, order models.Order) error {
	return h.publish(ctx, &Message{
		Type:       MessageTypeBookingDecided,
		Order:      order,
		Message:    "Booking " + string(order.Status) + " for " + order.RoomTitle,
		Timestamp:  time.Now().UnixMilli(),
		recipients: []string{order.DealerID, order.StudentID},
	})
}

// GetClientCount returns the number of open connections of a user
func (h *Hub) GetClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
