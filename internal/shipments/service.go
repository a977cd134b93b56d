package shipments

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

// RecordShipmentInput describes one inbound freight entry.
type RecordShipmentInput struct {
	Supplier  string     `json:"supplier" validate:"required,max=255"`
	Tracking  *string    `json:"tracking,omitempty" validate:"omitempty,max=128"`
	HubID     int64      `json:"hub_id"`
	SKU       string     `json:"sku" validate:"required,max=64"`
	Amount    int        `json:"amount" validate:"required,gt=0"`
	ShippedAt *time.Time `json:"shipped_at,omitempty"`
}

// Service records and lists shipment paperwork. Shipments are informational;
// stock only moves when someone records a ledger transaction.
type Service interface {
	Record(ctx context.Context, input RecordShipmentInput) (*models.Shipment, error)
	List(ctx context.Context, filters ListFilters) ([]models.Shipment, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires a shipment service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipments repository required")
	}
	return &service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Record(ctx context.Context, input RecordShipmentInput) (*models.Shipment, error) {
	supplier := strings.TrimSpace(input.Supplier)
	sku := strings.TrimSpace(input.SKU)
	if supplier == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "supplier required")
	}
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if input.HubID <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}
	if input.Amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	shippedAt := s.now()
	if input.ShippedAt != nil {
		shippedAt = input.ShippedAt.UTC()
	}

	shipment := &models.Shipment{
		ID:        uuid.New(),
		Supplier:  supplier,
		Tracking:  normalizeTracking(input.Tracking),
		HubID:     input.HubID,
		SKU:       sku,
		Amount:    input.Amount,
		ShippedAt: shippedAt,
	}
	if err := s.repo.Create(ctx, shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record shipment")
	}
	return shipment, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.Shipment, error) {
	shipments, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}
	return shipments, nil
}

func normalizeTracking(tracking *string) *string {
	if tracking == nil {
		return nil
	}
	value := strings.TrimSpace(*tracking)
	if value == "" {
		return nil
	}
	return &value
}
