package reservation

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/available", h.ListFreeRooms)
	rg.GET("/rooms/:id/availability", h.RoomAvailability)

	reservations := rg.Group("/reservations")
	{
		reservations.GET("", h.ListReservations)
		reservations.POST("", h.CreateReservation)
		reservations.GET("/:id", h.GetReservation)
		reservations.DELETE("/:id", h.CancelReservation)
	}
}
