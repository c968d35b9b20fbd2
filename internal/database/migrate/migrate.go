// Package migrate creates the hotel schema in dependency order.
package migrate

import (
	"fmt"

	"gorm.io/gorm"

	"hotel/internal/domain/client"
	"hotel/internal/domain/reservation"
	"hotel/internal/domain/room"
)

func Run(db *gorm.DB) error {
	steps := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"clients", client.AutoMigrate},
		{"rooms", room.AutoMigrate},
		{"reservations", reservation.AutoMigrate},
	}
	for _, s := range steps {
		if err := s.fn(db); err != nil {
			return fmt.Errorf("migrate %s: %w", s.name, err)
		}
	}
	return nil
}
