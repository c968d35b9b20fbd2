package room

import "hotel/internal/pkg/apperr"

var (
	ErrNotFound        = apperr.NotFound("room not found")
	ErrNumberTaken     = apperr.Conflict("a room with this number already exists")
	ErrHasReservations = apperr.Conflict("room still has reservations")
)
