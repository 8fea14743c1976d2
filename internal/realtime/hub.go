package realtime

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// Envelope is the wire format of the socket channel, both directions.
type Envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub maps each event to one broadcast room and relays envelopes to the
// room's connections. It is owned by main and injected where needed; no
// package-level registry. The hub performs no attendance checks: REST is
// the authorization boundary and the socket channel is a best-effort
// relay.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[uint]map[*Client]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		rooms:  make(map[uint]map[*Client]struct{}),
		logger: logger,
	}
}

func (h *Hub) JoinRoom(client *Client, eventID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[eventID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[eventID] = room
	}
	room[client] = struct{}{}
	client.rooms[eventID] = struct{}{}
}

func (h *Hub) LeaveRoom(client *Client, eventID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.leaveRoomLocked(client, eventID)
}

// Remove drops the client from every room it joined; called on disconnect.
func (h *Hub) Remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for eventID := range client.rooms {
		h.leaveRoomLocked(client, eventID)
	}
}

func (h *Hub) leaveRoomLocked(client *Client, eventID uint) {
	room, ok := h.rooms[eventID]
	if !ok {
		return
	}
	delete(room, client)
	delete(client.rooms, eventID)
	if len(room) == 0 {
		delete(h.rooms, eventID)
	}
}

// BroadcastToRoom relays an envelope to every connection in the room
// except exclude (normally the sender, which already has the payload).
// Slow consumers are skipped rather than blocking the broadcast.
func (h *Hub) BroadcastToRoom(eventID uint, event string, payload interface{}, exclude *Client) {
	raw, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[eventID] {
		if client == exclude {
			continue
		}
		select {
		case client.send <- raw:
		default:
			h.logger.Warn("dropping broadcast to slow client", zap.Uint("event_id", eventID))
		}
	}
}

// RoomSize reports the current number of connections in a room.
func (h *Hub) RoomSize(eventID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[eventID])
}
