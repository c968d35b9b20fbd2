package client

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"hotel/internal/database"
)

type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	List(ctx context.Context) ([]Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &clientRepository{db: db}
}

type clientModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name;size:100;not null"`
	Email     string    `gorm:"column:email;size:100;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (clientModel) TableName() string { return "clients" }

// AutoMigrate creates or updates the clients table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&clientModel{})
}

func toDomainClient(m clientModel) *Client {
	return &Client{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toClientModel(c *Client) clientModel {
	return clientModel{
		ID:        c.ID,
		Name:      strings.TrimSpace(c.Name),
		Email:     strings.ToLower(strings.TrimSpace(c.Email)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func (r *clientRepository) Create(ctx context.Context, c *Client) error {
	m := toClientModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	*c = *toDomainClient(m)
	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*Client, error) {
	var m clientModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainClient(m), nil
}

func (r *clientRepository) List(ctx context.Context) ([]Client, error) {
	var rows []clientModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]Client, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainClient(m))
	}
	return out, nil
}

func (r *clientRepository) Update(ctx context.Context, c *Client) error {
	m := toClientModel(c)
	tx := r.db.WithContext(ctx).
		Model(&clientModel{}).
		Where("id = ?", m.ID).
		Updates(map[string]any{"name": m.Name, "email": m.Email, "updated_at": time.Now()})
	if tx.Error != nil {
		if database.IsUniqueViolation(tx.Error) {
			return ErrEmailTaken
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
	*c = *updated
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&clientModel{}, id)
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
