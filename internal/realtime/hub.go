// Package realtime pushes reservation changes to websocket subscribers.
package realtime

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"hotel/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 4 * 1024
	sendBuffer = 64
)

// Topical values are delivered only to connections subscribed to their
// topic, or to connections without any subscription.
type Topical interface {
	Topic() string
}

type connection struct {
	conn   *websocket.Conn
	send   chan []byte
	topics map[string]bool
}

func (c *connection) wants(topic string) bool {
	return topic == "" || len(c.topics) == 0 || c.topics[topic]
}

// Hub tracks live websocket connections.
type Hub struct {
	log *zap.Logger

	mu          sync.RWMutex
	connections map[*connection]struct{}
	closed      bool
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		log:         logger.OrNop(log).Named("realtime"),
		connections: make(map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.connections[c] = struct{}{}
	return true
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// Count reports the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Broadcast marshals v once and queues it on every interested connection.
// Slow connections drop the message rather than block the caller.
func (h *Hub) Broadcast(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		h.log.Warn("marshal broadcast", zap.Error(err))
		return
	}

	var topic string
	if t, ok := v.(Topical); ok {
		topic = t.Topic()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if !c.wants(topic) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Debug("dropping message for slow subscriber")
		}
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.connections {
		delete(h.connections, c)
		close(c.send)
	}
}

// Serve runs the connection until the peer goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &connection{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		topics: make(map[string]bool),
	}
	if !h.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

type clientMessage struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("websocket closed", zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil || msg.Topic == "" {
			continue
		}

		switch msg.Type {
		case "subscribe":
			h.mu.Lock()
			c.topics[msg.Topic] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.topics, msg.Topic)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
