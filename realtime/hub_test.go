package realtime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, hub *Hub) *Client {
	return &Client{
		ID:   id,
		hub:  hub,
		send: make(chan []byte, 8),
	}
}

func receiveUpdate(t *testing.T, c *Client) EditUpdate {
	t.Helper()
	select {
	case raw := <-c.send:
		var update EditUpdate
		require.NoError(t, json.Unmarshal(raw, &update))
		return update
	default:
		t.Fatalf("client %s received nothing", c.ID)
		return EditUpdate{}
	}
}

func assertSilent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case raw := <-c.send:
		t.Fatalf("client %s unexpectedly received %s", c.ID, raw)
	default:
	}
}

func TestBroadcastStaysInRoom(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	b := newTestClient("b", hub)
	c := newTestClient("c", hub)
	d := newTestClient("d", hub)

	hub.Join(a, 1)
	hub.Join(b, 1)
	hub.Join(c, 1)
	hub.Join(d, 2)

	hub.BroadcastEdit(a, 1, "print(1)", "python")

	for _, member := range []*Client{b, c} {
		update := receiveUpdate(t, member)
		assert.Equal(t, EventCodeUpdate, update.Type)
		assert.Equal(t, uint(1), update.SnippetID)
		assert.Equal(t, "print(1)", update.Code)
		assert.Equal(t, "python", update.Language)
		assert.Equal(t, "a", update.SenderID)
	}
	assertSilent(t, a)
	assertSilent(t, d)
}

func TestBroadcastExcludesSender(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	hub.Join(a, 1)

	hub.BroadcastEdit(a, 1, "x", "go")
	assertSilent(t, a)
}

func TestBroadcastToUnknownRoom(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)

	hub.BroadcastEdit(a, 404, "x", "go")
	assertSilent(t, a)
}

func TestJoinIsIdempotent(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)

	hub.Join(a, 1)
	hub.Join(a, 1)
	assert.Equal(t, 1, hub.RoomSize(1))
}

func TestClientInMultipleRooms(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	b := newTestClient("b", hub)

	hub.Join(a, 1)
	hub.Join(a, 2)
	hub.Join(b, 2)

	hub.BroadcastEdit(b, 2, "y", "go")
	update := receiveUpdate(t, a)
	assert.Equal(t, uint(2), update.SnippetID)

	hub.BroadcastEdit(b, 1, "z", "go")
	update = receiveUpdate(t, a)
	assert.Equal(t, uint(1), update.SnippetID)
}

func TestLeaveUnknownRoomIsNoOp(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)

	hub.Leave(a, 1)
	assert.Equal(t, 0, hub.RoomSize(1))
}

func TestLeaveDropsEmptyRoom(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	b := newTestClient("b", hub)

	hub.Join(a, 1)
	hub.Join(b, 1)
	hub.Leave(a, 1)
	assert.Equal(t, 1, hub.RoomSize(1))

	hub.Leave(b, 1)
	assert.Equal(t, 0, hub.RoomSize(1))
	_, exists := hub.rooms[1]
	assert.False(t, exists, "an empty room must be removed")
}

func TestDisconnectLeavesAllRooms(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	b := newTestClient("b", hub)

	hub.Join(a, 1)
	hub.Join(a, 2)
	hub.Join(b, 1)

	hub.Disconnect(a)
	assert.Equal(t, 1, hub.RoomSize(1))
	assert.Equal(t, 0, hub.RoomSize(2))

	hub.BroadcastEdit(b, 1, "x", "go")
	assertSilent(t, a)
}

func TestBroadcastDropsOnFullBuffer(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	slow := &Client{ID: "slow", hub: hub, send: make(chan []byte, 1)}
	slow.send <- []byte("stuck")

	hub.Join(a, 1)
	hub.Join(slow, 1)

	// Must not block even though the member cannot accept the event.
	hub.BroadcastEdit(a, 1, "x", "go")
	assert.Equal(t, []byte("stuck"), <-slow.send)
	assertSilent(t, slow)
}

func TestHandleMessageDispatch(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	b := newTestClient("b", hub)

	a.handleMessage([]byte(`{"type":"join-room","snippet_id":3}`))
	b.handleMessage([]byte(`{"type":"join-room","snippet_id":3}`))
	assert.Equal(t, 2, hub.RoomSize(3))

	a.handleMessage([]byte(`{"type":"edit","snippet_id":3,"code":"let x = 1","language":"javascript"}`))
	update := receiveUpdate(t, b)
	assert.Equal(t, "let x = 1", update.Code)
	assert.Equal(t, "a", update.SenderID)

	a.handleMessage([]byte(`{"type":"leave-room","snippet_id":3}`))
	assert.Equal(t, 1, hub.RoomSize(3))
}

func TestHandleMessageDropsMalformed(t *testing.T) {
	hub := NewHub()
	a := newTestClient("a", hub)
	hub.Join(a, 1)

	a.handleMessage([]byte(`{"type":`))
	a.handleMessage([]byte(`{"type":"resize","snippet_id":1}`))
	assert.Equal(t, 1, hub.RoomSize(1))
	assertSilent(t, a)
}
