package realtime

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// Client-originated event types.
	EventJoinRoom  = "join-room"
	EventLeaveRoom = "leave-room"
	EventEdit      = "edit"

	// Server-originated event type.
	EventCodeUpdate = "code-update"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// ClientMessage is the envelope for all client-originated events.
type ClientMessage struct {
	Type      string `json:"type"`
	SnippetID uint   `json:"snippet_id"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// EditUpdate is relayed to the other members of a room.
type EditUpdate struct {
	Type      string `json:"type"`
	SnippetID uint   `json:"snippet_id"`
	Code      string `json:"code"`
	Language  string `json:"language"`
	SenderID  string `json:"sender_id"`
}

// Client is one websocket connection. Its identity exists only for the
// lifetime of the connection.
type Client struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Disconnect(c)
		c.conn.Close()
		log.WithField("client_id", c.ID).Info("websocket disconnected")
	}()

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Error("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).WithField("client_id", c.ID).Error("websocket read error")
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

// handleMessage dispatches one client event. Malformed payloads are
// dropped without a reply.
func (c *Client) handleMessage(message []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.WithError(err).WithField("client_id", c.ID).Debug("dropping malformed message")
		return
	}

	switch msg.Type {
	case EventJoinRoom:
		c.hub.Join(c, msg.SnippetID)
	case EventLeaveRoom:
		c.hub.Leave(c, msg.SnippetID)
	case EventEdit:
		c.hub.BroadcastEdit(c, msg.SnippetID, msg.Code, msg.Language)
	default:
		log.WithFields(log.Fields{
			"client_id": c.ID,
			"type":      msg.Type,
		}).Debug("dropping unknown message type")
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
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Error("failed to set write deadline")
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

			// Drain whatever queued in the meantime.
			n := len(c.send)
			for i := 0; i < n; i++ {
				if err := c.conn.WriteMessage(websocket.TextMessage, <-c.send); err != nil {
					return
				}
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Error("failed to set write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
