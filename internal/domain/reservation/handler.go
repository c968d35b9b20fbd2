package reservation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/params"
	"hotel/internal/pkg/response"
)

type Handler struct {
	service  *Service
	reporter *Reporter
}

// NewHandler builds the reservation handler. reporter may be nil, in which
// case detailed listings are unavailable.
func NewHandler(service *Service, reporter *Reporter) *Handler {
	return &Handler{service: service, reporter: reporter}
}

// ListFreeRooms handles GET /api/v1/rooms/available?arrival=&departure=
func (h *Handler) ListFreeRooms(c *gin.Context) {
	arrival, departure, err := params.QueryDates(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	rooms, err := h.service.ListFreeRooms(c.Request.Context(), arrival, departure)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// RoomAvailability handles GET /api/v1/rooms/:id/availability?arrival=&departure=
func (h *Handler) RoomAvailability(c *gin.Context) {
	roomID, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	arrival, departure, err := params.QueryDates(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	free, err := h.service.IsRoomFree(c.Request.Context(), roomID, arrival, departure)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, AvailabilityResponse{
		RoomID:    roomID,
		Arrival:   params.FormatDate(arrival),
		Departure: params.FormatDate(departure),
		Free:      free,
	})
}

// ListReservations handles GET /api/v1/reservations
// With detailed=true it returns the joined overview, optionally filtered by
// client_id and room_id.
func (h *Handler) ListReservations(c *gin.Context) {
	if detailed, _ := strconv.ParseBool(c.Query("detailed")); !detailed {
		list, err := h.service.List(c.Request.Context())
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, list)
		return
	}

	if h.reporter == nil {
		response.Error(c, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Detailed listing is not available")
		return
	}

	filter, err := overviewFilter(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	rows, err := h.reporter.Overview(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rows)
}

func overviewFilter(c *gin.Context) (OverviewFilter, error) {
	var f OverviewFilter
	for name, dst := range map[string]*int64{"client_id": &f.ClientID, "room_id": &f.RoomID} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v <= 0 {
			return f, apperr.Validation("invalid "+name, map[string]string{name: "must be a positive integer"})
		}
		*dst = v
	}
	return f, nil
}

// GetReservation handles GET /api/v1/reservations/:id
func (h *Handler) GetReservation(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// CreateReservation handles POST /api/v1/reservations
func (h *Handler) CreateReservation(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	arrival, departure, err := req.Stay()
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := h.service.BookRoom(c.Request.Context(), req.ClientID, req.RoomID, arrival, departure)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

// CancelReservation handles DELETE /api/v1/reservations/:id
func (h *Handler) CancelReservation(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.CancelReservation(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "cancelled": true})
}
