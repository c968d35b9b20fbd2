package reservation

import "hotel/internal/pkg/apperr"

var (
	ErrNotFound        = apperr.NotFound("reservation not found")
	ErrRoomUnavailable = apperr.Conflict("room is not available for these dates")
	ErrRoomBusy        = apperr.Conflict("room is being booked by another request, try again")
	ErrInvalidDates    = apperr.Validation("arrival must be before departure", map[string]string{
		"departure_date": "must be after arrival_date",
	})
)

// ErrUnknownReference is returned when the client or room disappeared
// between validation and insert.
var ErrUnknownReference = apperr.NotFound("client or room not found")
