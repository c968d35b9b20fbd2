package reservation

import (
	"context"
	"fmt"
	"time"

	"hotel/internal/domain/room"
)

// Interval is a stay of [Arrival, Departure).
type Interval struct {
	Arrival   time.Time
	Departure time.Time
}

// OverlapsStrict reports whether the intervals share at least one night.
// Touching intervals (one departs the day the other arrives) do not overlap.
func (i Interval) OverlapsStrict(o Interval) bool {
	return i.Arrival.Before(o.Departure) && i.Departure.After(o.Arrival)
}

// OverlapsInclusive is OverlapsStrict with closed bounds: touching
// intervals overlap.
func (i Interval) OverlapsInclusive(o Interval) bool {
	return !i.Arrival.After(o.Departure) && !i.Departure.Before(o.Arrival)
}

func (i Interval) Valid() bool {
	return i.Arrival.Before(i.Departure)
}

func (i Interval) Nights() int {
	if !i.Valid() {
		return 0
	}
	return int(i.Departure.Sub(i.Arrival).Hours() / 24)
}

// OverlapMode selects the overlap test used when listing free rooms.
type OverlapMode string

const (
	OverlapInclusive OverlapMode = "inclusive"
	OverlapStrict    OverlapMode = "strict"
)

func ParseOverlapMode(s string) (OverlapMode, error) {
	switch m := OverlapMode(s); m {
	case OverlapInclusive, OverlapStrict:
		return m, nil
	default:
		return "", fmt.Errorf("unknown overlap mode %q", s)
	}
}

func (m OverlapMode) overlaps(requested, existing Interval) bool {
	if m == OverlapStrict {
		return requested.OverlapsStrict(existing)
	}
	return requested.OverlapsInclusive(existing)
}

// Checker answers availability questions against the store.
type Checker struct {
	rooms        RoomReader
	reservations Repository
	listing      OverlapMode
}

func NewChecker(rooms RoomReader, reservations Repository, listing OverlapMode) *Checker {
	if listing == "" {
		listing = OverlapInclusive
	}
	return &Checker{rooms: rooms, reservations: reservations, listing: listing}
}

// IsRoomFree reports whether no reservation of the room strictly overlaps
// [arrival, departure). An unknown room yields room.ErrNotFound.
func (c *Checker) IsRoomFree(ctx context.Context, roomID int64, arrival, departure time.Time) (bool, error) {
	if _, err := c.rooms.GetByID(ctx, roomID); err != nil {
		return false, err
	}
	return roomFree(ctx, c.reservations, roomID, Interval{Arrival: arrival, Departure: departure}, OverlapStrict)
}

// ListFreeRooms walks the inventory in id order and keeps the rooms with no
// reservation overlapping [arrival, departure) under the listing mode.
func (c *Checker) ListFreeRooms(ctx context.Context, arrival, departure time.Time) ([]room.Room, error) {
	rooms, err := c.rooms.List(ctx)
	if err != nil {
		return nil, err
	}

	requested := Interval{Arrival: arrival, Departure: departure}
	free := make([]room.Room, 0, len(rooms))
	for _, r := range rooms {
		ok, err := roomFree(ctx, c.reservations, r.ID, requested, c.listing)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, r)
		}
	}
	return free, nil
}

func roomFree(ctx context.Context, repo Repository, roomID int64, requested Interval, mode OverlapMode) (bool, error) {
	existing, err := repo.ListByRoom(ctx, roomID)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if mode.overlaps(requested, r.Interval()) {
			return false, nil
		}
	}
	return true, nil
}
