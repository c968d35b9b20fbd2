package room

import "time"

type Room struct {
	ID        int64     `json:"id"`
	Number    string    `json:"number"`
	Type      string    `json:"type"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
