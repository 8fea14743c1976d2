package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(hub *Hub) *Client {
	return NewClient(hub, nil, zap.NewNop())
}

func receivedEnvelope(t *testing.T, c *Client) Envelope {
	t.Helper()

	select {
	case raw := <-c.send:
		var env Envelope
		require.NoError(t, json.Unmarshal(raw, &env))
		return env
	default:
		t.Fatal("expected a broadcast frame")
		return Envelope{}
	}
}

func TestBroadcastToRoom_ExcludesSender(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sender := newTestClient(hub)
	receiver := newTestClient(hub)

	hub.JoinRoom(sender, 1)
	hub.JoinRoom(receiver, 1)

	hub.BroadcastToRoom(1, "message_received", map[string]interface{}{"content": "hi"}, sender)

	env := receivedEnvelope(t, receiver)
	assert.Equal(t, "message_received", env.Event)

	assert.Empty(t, sender.send)
}

func TestBroadcastToRoom_OnlyReachesRoomMembers(t *testing.T) {
	hub := NewHub(zap.NewNop())
	member := newTestClient(hub)
	outsider := newTestClient(hub)

	hub.JoinRoom(member, 1)
	hub.JoinRoom(outsider, 2)

	hub.BroadcastToRoom(1, "user_typing", map[string]interface{}{"user_id": 7}, nil)

	assert.Len(t, member.send, 1)
	assert.Empty(t, outsider.send)
}

func TestLeaveRoom_StopsDelivery(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub)

	hub.JoinRoom(client, 1)
	hub.LeaveRoom(client, 1)

	hub.BroadcastToRoom(1, "message_received", nil, nil)
	assert.Empty(t, client.send)
}

func TestRemove_DropsAllRoomsAndPrunesEmptyOnes(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub)

	hub.JoinRoom(client, 1)
	hub.JoinRoom(client, 2)
	require.Equal(t, 1, hub.RoomSize(1))

	hub.Remove(client)

	assert.Zero(t, hub.RoomSize(1))
	assert.Zero(t, hub.RoomSize(2))
	assert.Empty(t, hub.rooms)
}

func TestHandle_JoinAndRelay(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sender := newTestClient(hub)
	receiver := newTestClient(hub)

	join := json.RawMessage(`{"event_id":42}`)
	sender.handle(inbound{Event: "join_event", Data: join})
	receiver.handle(inbound{Event: "join_event", Data: join})
	require.Equal(t, 2, hub.RoomSize(42))

	sender.handle(inbound{
		Event: "new_message",
		Data:  json.RawMessage(`{"event_id":42,"content":"hello"}`),
	})

	env := receivedEnvelope(t, receiver)
	assert.Equal(t, "message_received", env.Event)
	data, ok := env.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", data["content"])

	assert.Empty(t, sender.send)
}

func TestHandle_TypingIndicators(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sender := newTestClient(hub)
	receiver := newTestClient(hub)
	hub.JoinRoom(sender, 1)
	hub.JoinRoom(receiver, 1)

	sender.handle(inbound{
		Event: "typing",
		Data:  json.RawMessage(`{"event_id":1,"user_id":7,"user_name":"Ada"}`),
	})
	env := receivedEnvelope(t, receiver)
	assert.Equal(t, "user_typing", env.Event)

	sender.handle(inbound{
		Event: "stop_typing",
		Data:  json.RawMessage(`{"event_id":1,"user_id":7}`),
	})
	env = receivedEnvelope(t, receiver)
	assert.Equal(t, "user_stop_typing", env.Event)
}

func TestHandle_IgnoresMalformedPayloads(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := newTestClient(hub)

	client.handle(inbound{Event: "join_event", Data: json.RawMessage(`"not an object"`)})
	client.handle(inbound{Event: "join_event", Data: json.RawMessage(`{"event_id":0}`)})
	client.handle(inbound{Event: "unknown_event", Data: json.RawMessage(`{}`)})

	assert.Empty(t, hub.rooms)
}
