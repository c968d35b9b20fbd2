package reservation

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel/internal/database"
	"hotel/internal/domain/room"
)

const noOverlapConstraint = "reservations_no_overlap"

type reservationRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &reservationRepository{db: db}
}

type clientRef struct {
	ID int64 `gorm:"column:id;primaryKey"`
}

func (clientRef) TableName() string { return "clients" }

type roomRef struct {
	ID int64 `gorm:"column:id;primaryKey"`
}

func (roomRef) TableName() string { return "rooms" }

type reservationModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	ClientID  int64     `gorm:"column:client_id;not null;index"`
	RoomID    int64     `gorm:"column:room_id;not null;index"`
	Arrival   time.Time `gorm:"column:arrival_date;not null"`
	Departure time.Time `gorm:"column:departure_date;not null"`
	Status    string    `gorm:"column:status;size:50;not null;default:confirmed"`
	CreatedAt time.Time `gorm:"column:created_at"`

	Client clientRef `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Room   roomRef   `gorm:"foreignKey:RoomID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

func (reservationModel) TableName() string { return "reservations" }

// AutoMigrate creates the reservations table. Clients and rooms must be
// migrated first. On PostgreSQL it also installs an exclusion constraint
// that rejects overlapping stays of the same room.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&reservationModel{}); err != nil {
		return err
	}
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}
	stmt := fmt.Sprintf(`
DO $$
BEGIN
	IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = '%[1]s') THEN
		ALTER TABLE reservations ADD CONSTRAINT %[1]s
			EXCLUDE USING gist (room_id WITH =, tstzrange(arrival_date, departure_date, '[)') WITH &&);
	END IF;
END $$;`, noOverlapConstraint)
	if err := db.Exec(stmt).Error; err != nil {
		return fmt.Errorf("add %s: %w", noOverlapConstraint, err)
	}
	return nil
}

func toDomainReservation(m reservationModel) *Reservation {
	return &Reservation{
		ID:        m.ID,
		ClientID:  m.ClientID,
		RoomID:    m.RoomID,
		Arrival:   m.Arrival.UTC(),
		Departure: m.Departure.UTC(),
		Status:    m.Status,
		CreatedAt: m.CreatedAt,
	}
}

func toReservationModel(r *Reservation) reservationModel {
	return reservationModel{
		ID:        r.ID,
		ClientID:  r.ClientID,
		RoomID:    r.RoomID,
		Arrival:   r.Arrival.UTC(),
		Departure: r.Departure.UTC(),
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func (r *reservationRepository) Create(ctx context.Context, res *Reservation) error {
	m := toReservationModel(res)
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error
	switch {
	case err == nil:
	case database.IsExclusionViolation(err):
		return ErrRoomUnavailable
	case database.IsForeignKeyViolation(err):
		return ErrUnknownReference
	default:
		return err
	}
	*res = *toDomainReservation(m)
	return nil
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	var m reservationModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainReservation(m), nil
}

func (r *reservationRepository) List(ctx context.Context) ([]Reservation, error) {
	return r.find(r.db.WithContext(ctx).Order("id"))
}

func (r *reservationRepository) ListByRoom(ctx context.Context, roomID int64) ([]Reservation, error) {
	return r.find(r.db.WithContext(ctx).Where("room_id = ?", roomID).Order("arrival_date, id"))
}

func (r *reservationRepository) find(q *gorm.DB) ([]Reservation, error) {
	var rows []reservationModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Reservation, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainReservation(m))
	}
	return out, nil
}

func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&reservationModel{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// LockRoom issues SELECT ... FOR UPDATE on PostgreSQL. SQLite has no row
// locks; its single connection already serializes writers.
func (r *reservationRepository) LockRoom(ctx context.Context, roomID int64) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}

	var ref roomRef
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", roomID).
		Take(&ref).Error
	if database.IsNotFound(err) {
		return room.ErrNotFound
	}
	return err
}

func (r *reservationRepository) WithinTx(ctx context.Context, fn func(repo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&reservationRepository{db: tx})
	})
}
