package realtime

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/segmentio/ksuid"
	log "github.com/sirupsen/logrus"
)

// Hub tracks ephemeral per-snippet rooms. A room is created on first
// join, vanishes when its last member leaves, and only ever lives in
// process memory. Membership mutations and broadcasts for a room are
// serialized through the hub lock.
type Hub struct {
	mu       sync.RWMutex
	rooms    map[uint]map[*Client]bool
	upgrader websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[*Client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// ServeWS upgrades the request and starts the connection pumps.
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}

	client := &Client{
		ID:   ksuid.New().String(),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	go client.writePump()
	go client.readPump()

	log.WithField("client_id", client.ID).Info("websocket connected")
}

// Join adds the client to the snippet's room. Joining twice is a no-op;
// a client may be in any number of rooms at once.
func (h *Hub) Join(client *Client, snippetID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[snippetID] == nil {
		h.rooms[snippetID] = make(map[*Client]bool)
	}
	h.rooms[snippetID][client] = true
}

// Leave removes the client from the room; a no-op when not a member.
func (h *Hub) Leave(client *Client, snippetID uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoom(client, snippetID)
}

// removeFromRoom requires the hub lock.
func (h *Hub) removeFromRoom(client *Client, snippetID uint) {
	members, exists := h.rooms[snippetID]
	if !exists {
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, snippetID)
	}
}

// BroadcastEdit relays an edit to every other member of the room. The
// sender never receives its own broadcast. Delivery is best-effort: a
// member with a full send buffer misses the event.
func (h *Hub) BroadcastEdit(sender *Client, snippetID uint, code, language string) {
	update := EditUpdate{
		Type:      EventCodeUpdate,
		SnippetID: snippetID,
		Code:      code,
		Language:  language,
		SenderID:  sender.ID,
	}
	message, err := json.Marshal(update)
	if err != nil {
		log.WithError(err).Error("failed to marshal edit update")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for member := range h.rooms[snippetID] {
		if member == sender {
			continue
		}
		select {
		case member.send <- message:
		default:
			log.WithFields(log.Fields{
				"snippet_id": snippetID,
				"client_id":  member.ID,
			}).Warn("send buffer full, dropping edit update")
		}
	}
}

// Disconnect removes the client from every room it joined. Peers are
// not notified.
func (h *Hub) Disconnect(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for snippetID, members := range h.rooms {
		if members[client] {
			h.removeFromRoom(client, snippetID)
		}
	}
}

// RoomSize reports current room membership; 0 for unknown rooms.
func (h *Hub) RoomSize(snippetID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[snippetID])
}
