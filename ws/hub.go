// Package ws implements the realtime relay: WebRTC signaling between
// call peers grouped by room id, plus server-initiated dashboard
// broadcasts to every connected client.
package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// Envelope is the wire format for every relay message, inbound and
// outbound. Payload is forwarded verbatim and never inspected.
type Envelope struct {
	Event   string          `json:"event"`
	RoomID  string          `json:"roomId,omitempty"`
	UserID  string          `json:"userId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	EventJoinRoom         = "join-room"
	EventOffer            = "offer"
	EventAnswer           = "answer"
	EventICECandidate     = "ice-candidate"
	EventUserConnected    = "user-connected"
	EventUserDisconnected = "user-disconnected"
	EventDashboardUpdate  = "dashboard:update"
)

// Client represents a single WebSocket connection.
type Client struct {
	ID     string
	UserID string
	Send   chan []byte
	room   string
}

// Hub owns room membership explicitly: a map from room id to the set of
// connected clients. Rooms are created on first join and removed when
// the last member leaves. No capacity or ownership is enforced; any
// client may join any room id.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	all   map[*Client]struct{}
}

// NewHub creates a new Hub ready to manage WebSocket clients.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		all:   make(map[*Client]struct{}),
	}
}

// Register adds a newly connected client to the hub.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.all[client] = struct{}{}
}

// Unregister removes a client, notifies the remaining members of its
// room, and closes the client's Send channel.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.all[client]; !ok {
		return
	}

	if client.room != "" {
		h.leaveRoomLocked(client)
	}

	delete(h.all, client)
	close(client.Send)
}

// JoinRoom adds the client to a room and notifies existing members of
// the new peer id. A client is a member of at most one room: joining a
// different room leaves the previous one first, so no stale membership
// survives a move.
func (h *Hub) JoinRoom(client *Client, roomID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client.room != "" && client.room != roomID {
		h.leaveRoomLocked(client)
	}

	client.room = roomID
	client.UserID = userID

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}

	h.sendToRoomLocked(roomID, client, Envelope{
		Event:  EventUserConnected,
		UserID: userID,
	})

	h.rooms[roomID][client] = struct{}{}
}

// leaveRoomLocked removes the client from its current room, notifying
// the remaining members. Callers must hold h.mu.
func (h *Hub) leaveRoomLocked(client *Client) {
	members, ok := h.rooms[client.room]
	if !ok {
		client.room = ""
		return
	}

	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, client.room)
	} else {
		h.sendToRoomLocked(client.room, nil, Envelope{
			Event:  EventUserDisconnected,
			UserID: client.UserID,
		})
	}
	client.room = ""
}

// Relay forwards a signaling payload to every member of the named room
// except the sender.
func (h *Hub) Relay(sender *Client, roomID, event string, payload json.RawMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	h.sendToRoomLocked(roomID, sender, Envelope{
		Event:   event,
		Payload: payload,
	})
}

// BroadcastAll sends an event to every connected client regardless of room.
func (h *Hub) BroadcastAll(env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("ws: failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.all {
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// sendToRoomLocked delivers env to the room's members, excluding skip
// when non-nil. Callers must hold h.mu.
func (h *Hub) sendToRoomLocked(roomID string, skip *Client, env Envelope) {
	members, ok := h.rooms[roomID]
	if !ok {
		return
	}

	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("ws: failed to marshal event: %v", err)
		return
	}

	for client := range members {
		if client == skip {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.all)
}

// RoomCount returns the number of clients currently in a room.
func (h *Hub) RoomCount(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[roomID])
}
