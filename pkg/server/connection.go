package server

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mateline/rules-server/pkg/events"
	"github.com/mateline/rules-server/pkg/messages"
)

// Connection is one websocket client. Reads and writes run on their own
// goroutines; the hub is the only place connection state changes.
type Connection struct {
	ID      uuid.UUID
	ws      *websocket.Conn
	hub     *Hub
	send    chan []byte // buffered channel of outbound messages
	writeMu sync.Mutex  // protects concurrent writes to ws

	publisher *events.Publisher
	logger    *zap.Logger
}

// NewConnection wraps an upgraded websocket connection.
func NewConnection(
	ws *websocket.Conn,
	hub *Hub,
	publisher *events.Publisher,
	logger *zap.Logger,
) *Connection {
	return &Connection{
		ID:        uuid.New(),
		ws:        ws,
		hub:       hub,
		send:      make(chan []byte, 256),
		publisher: publisher,
		logger:    logger,
	}
}

// ReadPump handles inbound messages from the client until the connection
// drops, then lets the manager clean up the games this connection owns.
func (c *Connection) ReadPump() {
	defer func() {
		c.publisher.Publish(events.Event{
			Type: events.EventConnectionClosed,
			Payload: map[string]string{
				"connection_id": c.ID.String(),
			},
		})
		c.hub.Unregister(c)
		c.ws.Close()
	}()

	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("read error", zap.Error(err))
			}
			return
		}

		// We only handle text frames.
		if msgType != websocket.TextMessage {
			continue
		}

		var inbound messages.InboundMessage
		if err := json.Unmarshal(msg, &inbound); err != nil {
			c.logger.Error("failed to parse inbound JSON", zap.Error(err))
			continue
		}

		c.hub.inbound <- InboundHubMessage{
			Conn:    c,
			Message: inbound,
		}
	}
}

// WritePump handles outbound messages to the client
func (c *Connection) WritePump() {
	defer c.ws.Close()

	for {
		message, ok := <-c.send
		if !ok {
			// Channel closed by the hub.
			c.logger.Info("send channel closed",
				zap.String("connection_id", c.ID.String()))
			return
		}

		c.writeMu.Lock()
		err := c.ws.WriteMessage(websocket.TextMessage, message)
		c.writeMu.Unlock()
		if err != nil {
			c.logger.Error("write error", zap.Error(err))
			return
		}
	}
}

// SendJSON is a helper for sending JSON to this connection
func (c *Connection) SendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		c.logger.Error("error marshaling JSON", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, dropping message",
			zap.String("connection_id", c.ID.String()))
	}
}
