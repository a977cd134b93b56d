package supplyrequests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
)

// Repository manages the supply_requests table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.SupplyRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.SupplyRequest, error)
	List(ctx context.Context, filters ListFilters) ([]models.SupplyRequest, error)
	AttachResponse(ctx context.Context, id uuid.UUID, response string, respondedBy uuid.UUID, at time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a supply request repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.SupplyRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SupplyRequest, error) {
	var request models.SupplyRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters) ([]models.SupplyRequest, error) {
	query := r.db.WithContext(ctx).Model(&models.SupplyRequest{})
	if filters.HubID != nil {
		query = query.Where("hub_id = ?", *filters.HubID)
	}
	if filters.OpenOnly {
		query = query.Where("response IS NULL")
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at < ?", *filters.To)
	}

	var requests []models.SupplyRequest
	if err := query.Order("created_at DESC, id DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// AttachResponse writes the answer only when the request is still open, so a
// second responder loses the race instead of overwriting the first.
func (r *repository) AttachResponse(ctx context.Context, id uuid.UUID, response string, respondedBy uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.SupplyRequest{}).
		Where("id = ? AND response IS NULL", id).
		Updates(map[string]any{
			"response":     response,
			"responded_by": respondedBy,
			"responded_at": at,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
