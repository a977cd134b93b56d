package shipments

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
)

// ListFilters narrow the shipment list.
type ListFilters struct {
	HubID    *int64
	Supplier string
	From     *time.Time
	To       *time.Time
}

// Repository manages the shipments table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shipment *models.Shipment) error
	List(ctx context.Context, filters ListFilters) ([]models.Shipment, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a shipment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.Shipment, error) {
	query := r.db.WithContext(ctx).Model(&models.Shipment{})
	if filters.HubID != nil {
		query = query.Where("hub_id = ?", *filters.HubID)
	}
	if filters.Supplier != "" {
		query = query.Where("supplier = ?", filters.Supplier)
	}
	if filters.From != nil {
		query = query.Where("shipped_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("shipped_at < ?", *filters.To)
	}

	var shipments []models.Shipment
	if err := query.Order("shipped_at DESC, id DESC").Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}
