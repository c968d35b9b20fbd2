package room

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel/internal/pkg/params"
	"hotel/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListRooms handles GET /api/v1/rooms
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/v1/rooms/:id
func (h *Handler) GetRoom(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	r, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// CreateRoom handles POST /api/v1/rooms
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, r)
}

// UpdateRoom handles PUT /api/v1/rooms/:id
func (h *Handler) UpdateRoom(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	r, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id
func (h *Handler) DeleteRoom(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
