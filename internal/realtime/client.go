package realtime

import (
	"encoding/json"
	"time"

	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Socket events understood by the relay. Payloads are forwarded as the
// client supplied them; the REST layer is where authorization happens.
const (
	eventJoinRoom       = "join_event"
	eventLeaveRoom      = "leave_event"
	eventNewMessage     = "new_message"
	eventTyping         = "typing"
	eventStopTyping     = "stop_typing"
	eventMessageRelayed = "message_received"
	eventUserTyping     = "user_typing"
	eventUserStopTyping = "user_stop_typing"
)

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	rooms  map[uint]struct{}
	logger *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, logger *zap.Logger) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		rooms:  make(map[uint]struct{}),
		logger: logger,
	}
}

// Serve runs the write pump in the background and reads until the
// connection drops; it returns after cleanup.
func (c *Client) Serve() {
	go c.writePump()
	c.readPump()
}

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type roomRef struct {
	EventID uint `json:"event_id"`
}

type typingPayload struct {
	EventID  uint   `json:"event_id"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name,omitempty"`
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Remove(c)
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var msg inbound
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Debug("ignoring malformed socket frame", zap.Error(err))
			continue
		}
		c.handle(msg)
	}
}

func (c *Client) handle(msg inbound) {
	switch msg.Event {
	case eventJoinRoom:
		var ref roomRef
		if err := json.Unmarshal(msg.Data, &ref); err != nil || ref.EventID == 0 {
			return
		}
		c.hub.JoinRoom(c, ref.EventID)

	case eventLeaveRoom:
		var ref roomRef
		if err := json.Unmarshal(msg.Data, &ref); err != nil || ref.EventID == 0 {
			return
		}
		c.hub.LeaveRoom(c, ref.EventID)

	case eventNewMessage:
		var ref roomRef
		if err := json.Unmarshal(msg.Data, &ref); err != nil || ref.EventID == 0 {
			return
		}
		// Relay as-is to the room, minus the sender: its client already
		// rendered the message locally.
		c.hub.BroadcastToRoom(ref.EventID, eventMessageRelayed, json.RawMessage(msg.Data), c)

	case eventTyping:
		var payload typingPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.EventID == 0 {
			return
		}
		c.hub.BroadcastToRoom(payload.EventID, eventUserTyping, map[string]interface{}{
			"user_id":   payload.UserID,
			"user_name": payload.UserName,
		}, c)

	case eventStopTyping:
		var payload typingPayload
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.EventID == 0 {
			return
		}
		c.hub.BroadcastToRoom(payload.EventID, eventUserStopTyping, map[string]interface{}{
			"user_id": payload.UserID,
		}, c)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
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
