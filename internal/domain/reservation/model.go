package reservation

import (
	"encoding/json"
	"strconv"
	"time"
)

const StatusConfirmed = "confirmed"

// DateLayout is the calendar date format used for arrival and departure.
const DateLayout = "2006-01-02"

type Reservation struct {
	ID        int64     `json:"id"`
	ClientID  int64     `json:"client_id"`
	RoomID    int64     `json:"room_id"`
	Arrival   time.Time `json:"arrival_date"`
	Departure time.Time `json:"departure_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Interval returns the stay as a half-open [arrival, departure) interval.
func (r Reservation) Interval() Interval {
	return Interval{Arrival: r.Arrival, Departure: r.Departure}
}

// MarshalJSON renders arrival and departure as calendar dates.
func (r Reservation) MarshalJSON() ([]byte, error) {
	type alias Reservation
	return json.Marshal(struct {
		alias
		Arrival   string `json:"arrival_date"`
		Departure string `json:"departure_date"`
	}{
		alias:     alias(r),
		Arrival:   r.Arrival.UTC().Format(DateLayout),
		Departure: r.Departure.UTC().Format(DateLayout),
	})
}

// Overview is a reservation joined with its client and room for listings.
type Overview struct {
	ID          int64     `db:"id" json:"id"`
	ClientID    int64     `db:"client_id" json:"client_id"`
	ClientName  string    `db:"client_name" json:"client_name"`
	ClientEmail string    `db:"client_email" json:"client_email"`
	RoomID      int64     `db:"room_id" json:"room_id"`
	RoomNumber  string    `db:"room_number" json:"room_number"`
	RoomType    string    `db:"room_type" json:"room_type"`
	Arrival     time.Time `db:"arrival_date" json:"-"`
	Departure   time.Time `db:"departure_date" json:"-"`
	Status      string    `db:"status" json:"status"`
}

func (o Overview) MarshalJSON() ([]byte, error) {
	type alias Overview
	return json.Marshal(struct {
		alias
		Arrival   string `json:"arrival_date"`
		Departure string `json:"departure_date"`
		Nights    int    `json:"nights"`
	}{
		alias:     alias(o),
		Arrival:   o.Arrival.UTC().Format(DateLayout),
		Departure: o.Departure.UTC().Format(DateLayout),
		Nights:    Interval{Arrival: o.Arrival, Departure: o.Departure}.Nights(),
	})
}

// Event is broadcast to live subscribers when reservations change.
type Event struct {
	Type        string      `json:"type"`
	Reservation Reservation `json:"reservation"`
}

// Topic scopes the event to its room for subscribers that filter.
func (e Event) Topic() string {
	return "room:" + strconv.FormatInt(e.Reservation.RoomID, 10)
}

const (
	EventCreated   = "reservation.created"
	EventCancelled = "reservation.cancelled"
)
