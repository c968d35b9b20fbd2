package room

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel/internal/database"
)

type Repository interface {
	Create(ctx context.Context, r *Room) error
	GetByID(ctx context.Context, id int64) (*Room, error)
	// List returns the whole inventory ordered by id.
	List(ctx context.Context) ([]Room, error)
	Update(ctx context.Context, r *Room) error
	Delete(ctx context.Context, id int64) error
}

type roomRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &roomRepository{db: db}
}

type roomModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Number    string    `gorm:"column:number;size:10;not null;uniqueIndex"`
	Type      string    `gorm:"column:type;size:50;not null"`
	Price     float64   `gorm:"column:price;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (roomModel) TableName() string { return "rooms" }

// AutoMigrate creates or updates the rooms table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&roomModel{})
}

func toDomainRoom(m roomModel) *Room {
	return &Room{
		ID:        m.ID,
		Number:    m.Number,
		Type:      m.Type,
		Price:     m.Price,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toRoomModel(r *Room) roomModel {
	return roomModel{
		ID:        r.ID,
		Number:    strings.TrimSpace(r.Number),
		Type:      strings.TrimSpace(r.Type),
		Price:     r.Price,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *roomRepository) Create(ctx context.Context, room *Room) error {
	m := toRoomModel(room)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrNumberTaken
		}
		return err
	}
	*room = *toDomainRoom(m)
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id int64) (*Room, error) {
	var m roomModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainRoom(m), nil
}

func (r *roomRepository) List(ctx context.Context) ([]Room, error) {
	var rows []roomModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Room, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainRoom(m))
	}
	return out, nil
}

func (r *roomRepository) Update(ctx context.Context, room *Room) error {
	m := toRoomModel(room)
	tx := r.db.WithContext(ctx).
		Model(&roomModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{
			"number":     m.Number,
			"type":       m.Type,
			"price":      m.Price,
			"updated_at": time.Now(),
		})
	if tx.Error != nil {
		if database.IsUniqueViolation(tx.Error) {
			return ErrNumberTaken
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}

	updated, err := r.GetByID(ctx, m.ID)
	if err != nil {
		return err
	}
	*room = *updated
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&roomModel{}, id)
	if tx.Error != nil {
		if database.IsForeignKeyViolation(tx.Error) {
			return ErrHasReservations
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
