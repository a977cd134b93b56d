package assignments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
)

// Repository manages the hub/SKU membership table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, pair *models.HubSKU) error
	Delete(ctx context.Context, hubID int64, sku string) error
	Exists(ctx context.Context, hubID int64, sku string) (bool, error)
	ListByHub(ctx context.Context, hubID int64) ([]AssignedSKU, error)
	ProductExists(ctx context.Context, sku string) (bool, error)
	HubExists(ctx context.Context, hubID int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an assignment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, pair *models.HubSKU) error {
	return r.db.WithContext(ctx).Create(pair).Error
}

func (r *repository) Delete(ctx context.Context, hubID int64, sku string) error {
	return r.db.WithContext(ctx).
		Where("hub_id = ? AND sku = ?", hubID, sku).
		Delete(&models.HubSKU{}).Error
}

func (r *repository) Exists(ctx context.Context, hubID int64, sku string) (bool, error) {
	var pair models.HubSKU
	err := r.db.WithContext(ctx).
		Where("hub_id = ? AND sku = ?", hubID, sku).
		First(&pair).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

const listByHubQuery = `
SELECT p.sku AS sku, p.name AS name, p.barcode AS barcode
FROM hub_skus hs
JOIN products p ON p.sku = hs.sku
WHERE hs.hub_id = ?
ORDER BY p.name ASC, p.sku ASC
`

func (r *repository) ListByHub(ctx context.Context, hubID int64) ([]AssignedSKU, error) {
	var rows []AssignedSKU
	if err := r.db.WithContext(ctx).
		Raw(listByHubQuery, hubID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ProductExists(ctx context.Context, sku string) (bool, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *repository) HubExists(ctx context.Context, hubID int64) (bool, error) {
	var hub models.Hub
	err := r.db.WithContext(ctx).
		Where("id = ?", hubID).
		First(&hub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
