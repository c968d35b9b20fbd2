package reservation

import (
	"context"

	"hotel/internal/domain/client"
	"hotel/internal/domain/room"
)

type Repository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id int64) (*Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	ListByRoom(ctx context.Context, roomID int64) ([]Reservation, error)
	Delete(ctx context.Context, id int64) error
	// LockRoom takes a row lock on the room for the rest of the
	// transaction where the database supports it.
	LockRoom(ctx context.Context, roomID int64) error
	// WithinTx runs fn against a repository bound to one transaction.
	WithinTx(ctx context.Context, fn func(repo Repository) error) error
}

type RoomReader interface {
	GetByID(ctx context.Context, id int64) (*room.Room, error)
	List(ctx context.Context) ([]room.Room, error)
}

type ClientReader interface {
	GetByID(ctx context.Context, id int64) (*client.Client, error)
}

// Locker serializes bookings of one room across requests.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type Broadcaster interface {
	Broadcast(v any)
}

// Recorder receives booking outcomes for metrics.
type Recorder interface {
	BookingAttempt(outcome string)
	ReservationCancelled()
}
