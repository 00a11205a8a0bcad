package ws

import (
	"context"
	"errors"
	"log/slog"

	"campusnet/internal/service"
)

// Payload is a direct message on the wire.
type Payload struct {
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Hub relays direct messages between connected clients. Every relay
// goes through MessageService, which re-checks the friendship ledger
// per message: a broken friendship stops delivery immediately.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	refresh    chan *Client
	broadcast  chan Payload
	done       chan struct{}

	messages *service.MessageService
	presence *service.PresenceService
}

func NewHub(messages *service.MessageService, presence *service.PresenceService) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		refresh:    make(chan *Client),
		broadcast:  make(chan Payload),
		done:       make(chan struct{}),
		messages:   messages,
		presence:   presence,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.UserID] = client
			h.presence.Connected(context.Background(), client.UserID)

		case client := <-h.unregister:
			if current, ok := h.clients[client.UserID]; ok && current == client {
				delete(h.clients, client.UserID)
				close(client.Send)
			}
			h.presence.Disconnected(context.Background(), client.UserID)

		case client := <-h.refresh:
			h.presence.Connected(context.Background(), client.UserID)

		case msg := <-h.broadcast:
			h.deliver(msg)

		case <-h.done:
			for _, client := range h.clients {
				close(client.Send)
			}
			h.clients = make(map[string]*Client)
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Register attaches an authenticated client to the hub. Like the other
// lifecycle sends it must not block once the hub has stopped, so every
// send races against done.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// Unregister detaches a client; safe to call during shutdown.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Refresh renews the client's presence lease.
func (h *Hub) Refresh(c *Client) {
	select {
	case h.refresh <- c:
	case <-h.done:
	}
}

// Forward hands an inbound message to the hub for delivery.
func (h *Hub) Forward(msg Payload) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	}
}

func (h *Hub) deliver(msg Payload) {
	_, err := h.messages.Send(context.Background(), msg.SenderID, msg.ReceiverID, msg.Content, msg.ImageURL)
	if err != nil {
		if sender, ok := h.clients[msg.SenderID]; ok {
			reason := "failed to send message"
			if errors.Is(err, service.ErrForbidden) {
				reason = "you can only message accepted friends"
			}
			sender.Send <- Payload{Error: reason}
		}
		if !errors.Is(err, service.ErrForbidden) {
			slog.Error("Failed to persist direct message", "error", err)
		}
		return
	}

	if receiver, ok := h.clients[msg.ReceiverID]; ok {
		receiver.Send <- msg
	}
}
