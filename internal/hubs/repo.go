package hubs

import (
	"context"

	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
)

// Repository manages the hubs table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, hub *models.Hub) error
	Rename(ctx context.Context, id int64, name string) error
	FindByID(ctx context.Context, id int64) (*models.Hub, error)
	List(ctx context.Context) ([]models.Hub, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a hub repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, hub *models.Hub) error {
	return r.db.WithContext(ctx).Create(hub).Error
}

func (r *repository) Rename(ctx context.Context, id int64, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.Hub{}).
		Where("id = ?", id).
		UpdateColumn("name", name).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Hub, error) {
	var hub models.Hub
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hub).Error; err != nil {
		return nil, err
	}
	return &hub, nil
}

func (r *repository) List(ctx context.Context) ([]models.Hub, error) {
	var hubs []models.Hub
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&hubs).Error; err != nil {
		return nil, err
	}
	return hubs, nil
}
