package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"hotel/internal/database"
)

type OverviewFilter struct {
	ClientID int64
	RoomID   int64
}

// Reporter runs read-only joined queries over reservations.
type Reporter struct {
	db *sqlx.DB
}

func NewReporter(db *sqlx.DB) *Reporter {
	return &Reporter{db: db}
}

// NewReporterFromGorm shares the connection pool owned by gorm.
func NewReporterFromGorm(db *gorm.DB) (*Reporter, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("reporter: %w", err)
	}
	return NewReporter(sqlx.NewDb(sqlDB, database.DriverName(db))), nil
}

const overviewQuery = `
	SELECT
		r.id, r.client_id, c.name AS client_name, c.email AS client_email,
		r.room_id, rm.number AS room_number, rm.type AS room_type,
		r.arrival_date, r.departure_date, r.status
	FROM reservations r
	JOIN clients c ON c.id = r.client_id
	JOIN rooms rm ON rm.id = r.room_id`

// Overview lists reservations with client and room details, earliest
// arrival first.
func (r *Reporter) Overview(ctx context.Context, f OverviewFilter) ([]Overview, error) {
	var (
		where []string
		args  []any
	)
	if f.ClientID > 0 {
		where = append(where, "r.client_id = ?")
		args = append(args, f.ClientID)
	}
	if f.RoomID > 0 {
		where = append(where, "r.room_id = ?")
		args = append(args, f.RoomID)
	}

	query := overviewQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY r.arrival_date, r.id"

	out := []Overview{}
	if err := r.db.SelectContext(ctx, &out, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("reservation overview: %w", err)
	}
	for i := range out {
		out[i].Arrival = out[i].Arrival.UTC()
		out[i].Departure = out[i].Departure.UTC()
	}
	return out, nil
}
