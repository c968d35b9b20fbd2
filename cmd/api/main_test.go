package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/database/migrate"
	"hotel/internal/lock"
	"hotel/internal/metrics"
	"hotel/internal/realtime"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(database.MemoryDSN("api_"+t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, migrate.Run(db))

	cfg := &config.Config{
		AppEnv:         "test",
		ListingOverlap: "inclusive",
		MetricsEnabled: true,
	}
	hub := realtime.NewHub(nil)
	t.Cleanup(hub.Close)

	r, err := newRouter(cfg, zap.NewNop(), db, lock.NewMemoryLocker(time.Second), hub, metrics.New())
	require.NoError(t, err)
	return r
}

func call(t *testing.T, r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var resp apiResponse
	if rr.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	}
	return rr, resp
}

func TestBookingLifecycle(t *testing.T) {
	r := setupServer(t)

	rr, _ := call(t, r, http.MethodPost, "/api/v1/clients", map[string]any{"name": "Alice", "email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr, _ = call(t, r, http.MethodPost, "/api/v1/rooms", map[string]any{"number": "101", "type": "double", "price": 80})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr, _ = call(t, r, http.MethodPost, "/api/v1/rooms", map[string]any{"number": "102", "type": "single", "price": 60})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	booking := map[string]any{
		"client_id":      1,
		"room_id":        1,
		"arrival_date":   "2024-03-01",
		"departure_date": "2024-03-05",
	}
	rr, resp := call(t, r, http.MethodPost, "/api/v1/reservations", booking)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		ID        int64  `json:"id"`
		Arrival   string `json:"arrival_date"`
		Departure string `json:"departure_date"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &created))
	assert.Equal(t, "2024-03-01", created.Arrival)

	rr, resp = call(t, r, http.MethodPost, "/api/v1/reservations", booking)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "CONFLICT", resp.Error.Code)

	rr, resp = call(t, r, http.MethodGet, "/api/v1/rooms/available?arrival=2024-03-02&departure=2024-03-04", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var free []struct {
		Number string `json:"number"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &free))
	require.Len(t, free, 1)
	assert.Equal(t, "102", free[0].Number)

	rr, _ = call(t, r, http.MethodDelete, "/api/v1/reservations/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, resp = call(t, r, http.MethodDelete, "/api/v1/reservations/1", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	rr, _ = call(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `hotel_booking_attempts_total{outcome="booked"} 1`)
	assert.Contains(t, rr.Body.String(), `hotel_booking_attempts_total{outcome="conflict"} 1`)
	assert.Contains(t, rr.Body.String(), "hotel_reservations_cancelled_total 1")
}

func TestProbesAndFallbacks(t *testing.T) {
	r := setupServer(t)

	rr, _ := call(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))

	rr, _ = call(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr, resp := call(t, r, http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", resp.Error.Code)

	rr, _ = call(t, r, http.MethodGet, "/pages/rooms", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No rooms yet.")
}
