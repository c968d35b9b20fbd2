package realtime

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomEvent struct {
	Type   string `json:"type"`
	RoomID int64  `json:"room_id"`
}

func (e roomEvent) Topic() string {
	if e.RoomID == 1 {
		return "room:1"
	}
	return "room:2"
}

func setupServer(t *testing.T) (*Hub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	r := gin.New()
	NewHandler(hub, nil).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/reservations"
}

func dial(t *testing.T, hub *Hub, url string, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.Count() == want }, time.Second, 5*time.Millisecond)
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) roomEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var e roomEvent
	require.NoError(t, json.Unmarshal(raw, &e))
	return e
}

func TestHub_BroadcastReachesSubscribers(t *testing.T) {
	hub, url := setupServer(t)
	a := dial(t, hub, url, 1)
	b := dial(t, hub, url, 2)

	hub.Broadcast(roomEvent{Type: "reservation.created", RoomID: 1})

	assert.Equal(t, "reservation.created", readEvent(t, a).Type)
	assert.Equal(t, int64(1), readEvent(t, b).RoomID)
}

func TestHub_TopicFilter(t *testing.T) {
	hub, url := setupServer(t)
	filtered := dial(t, hub, url, 1)
	all := dial(t, hub, url, 2)

	require.NoError(t, filtered.WriteJSON(map[string]string{"type": "subscribe", "topic": "room:2"}))
	// give the read pump time to apply the subscription
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for c := range hub.connections {
			if c.topics["room:2"] {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)

	hub.Broadcast(roomEvent{Type: "reservation.created", RoomID: 1})
	hub.Broadcast(roomEvent{Type: "reservation.cancelled", RoomID: 2})

	assert.Equal(t, "reservation.created", readEvent(t, all).Type)
	assert.Equal(t, "reservation.cancelled", readEvent(t, all).Type)
	assert.Equal(t, "reservation.cancelled", readEvent(t, filtered).Type)
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	hub, url := setupServer(t)
	conn := dial(t, hub, url, 1)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Count() == 0 }, time.Second, 5*time.Millisecond)
}

func TestHub_CloseRefusesNewConnections(t *testing.T) {
	hub, url := setupServer(t)
	conn := dial(t, hub, url, 1)

	hub.Close()
	assert.Equal(t, 0, hub.Count())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
