// Package gateway is the real-time surface: a websocket hub with per-game
// rooms, the named-event protocol players speak, and the publisher the
// dealing loop pushes through.
package gateway

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Client is one websocket connection, optionally joined to a game room.
type Client struct {
	UserID primitive.ObjectID
	GameID primitive.ObjectID

	conn *websocket.Conn
	send chan []byte
	hub  *Hub
}

type roomMessage struct {
	gameID  primitive.ObjectID
	payload []byte
}

// Hub tracks connected clients and their game rooms. All membership changes
// flow through the run loop, so no map is touched concurrently.
type Hub struct {
	rooms      map[primitive.ObjectID]map[*Client]bool
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	join       chan *Client
	leave      chan *Client
	broadcast  chan roomMessage
}

// NewHub creates a new Hub; call Run in its own goroutine.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[primitive.ObjectID]map[*Client]bool),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan *Client),
		leave:      make(chan *Client),
		broadcast:  make(chan roomMessage, 256),
	}
}

// Run owns the membership maps until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.dropFromRoom(client)
				delete(h.clients, client)
				close(client.send)
			}

		case client := <-h.join:
			room, ok := h.rooms[client.GameID]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.GameID] = room
			}
			room[client] = true

		case client := <-h.leave:
			h.dropFromRoom(client)

		case msg := <-h.broadcast:
			for client := range h.rooms[msg.gameID] {
				select {
				case client.send <- msg.payload:
				default:
					// slow consumer; drop the connection rather than
					// block the dealing loop
					h.dropFromRoom(client)
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) dropFromRoom(client *Client) {
	if room, ok := h.rooms[client.GameID]; ok {
		delete(room, client)
		if len(room) == 0 {
			delete(h.rooms, client.GameID)
		}
	}
}

// Broadcast fans an event out to everyone in a game's room.
func (h *Hub) Broadcast(gameID primitive.ObjectID, event string, data interface{}) {
	payload, err := marshalEvent(event, data)
	if err != nil {
		slog.Error("Failed to encode broadcast event", "event", event, "error", err)
		return
	}
	h.broadcast <- roomMessage{gameID: gameID, payload: payload}
}

// Send pushes an event to a single client.
func (h *Hub) Send(client *Client, event string, data interface{}) {
	payload, err := marshalEvent(event, data)
	if err != nil {
		slog.Error("Failed to encode event", "event", event, "error", err)
		return
	}
	select {
	case client.send <- payload:
	default:
		slog.Warn("Dropping event for slow client", "event", event)
	}
}

func marshalEvent(event string, data interface{}) ([]byte, error) {
	return json.Marshal(Envelope{Event: event, Data: mustRaw(data)})
}

func mustRaw(data interface{}) json.RawMessage {
	if data == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil
	}
	return raw
}
