package reservation

import (
	"time"

	"hotel/internal/pkg/params"
)

type CreateReservationRequest struct {
	ClientID      int64  `json:"client_id" form:"client_id" binding:"required,gt=0"`
	RoomID        int64  `json:"room_id" form:"room_id" binding:"required,gt=0"`
	ArrivalDate   string `json:"arrival_date" form:"arrival_date" binding:"required,datetime=2006-01-02"`
	DepartureDate string `json:"departure_date" form:"departure_date" binding:"required,datetime=2006-01-02"`
}

// Stay parses the requested dates as midnight UTC.
func (r CreateReservationRequest) Stay() (arrival, departure time.Time, err error) {
	arrival, err = params.ParseDate("arrival_date", r.ArrivalDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	departure, err = params.ParseDate("departure_date", r.DepartureDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return arrival, departure, nil
}

type AvailabilityResponse struct {
	RoomID    int64  `json:"room_id"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Free      bool   `json:"free"`
}
