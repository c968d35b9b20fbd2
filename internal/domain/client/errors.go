package client

import "hotel/internal/pkg/apperr"

var (
	ErrNotFound        = apperr.NotFound("client not found")
	ErrEmailTaken      = apperr.Conflict("a client with this email already exists")
	ErrHasReservations = apperr.Conflict("client still has reservations")
)
