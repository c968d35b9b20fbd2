package client

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

// ListClients handles GET /api/v1/clients
func (h *Handler) ListClients(c *gin.Context) {
	clients, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, clients)
}

// GetClient handles GET /api/v1/clients/:id
func (h *Handler) GetClient(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	cl, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cl)
}

// CreateClient handles POST /api/v1/clients
func (h *Handler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, cl)
}

// UpdateClient handles PUT /api/v1/clients/:id
func (h *Handler) UpdateClient(c *gin.Context) {
	id, err := params.PathID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	cl, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, cl)
}

// DeleteClient handles DELETE /api/v1/clients/:id
func (h *Handler) DeleteClient(c *gin.Context) {
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
