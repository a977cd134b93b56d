package assignments

import (
	"context"
	"fmt"
	"strings"

	"github.com/tttsupply/inventory-backend/pkg/db"
	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

// Service manages which SKUs each hub tracks. Assign and Unassign are both
// idempotent; neither ever touches ledger rows.
type Service interface {
	Assign(ctx context.Context, input AssignInput) error
	Unassign(ctx context.Context, hubID int64, sku string) error
	ListAssigned(ctx context.Context, hubID int64) ([]AssignedSKU, error)
	IsAssigned(ctx context.Context, hubID int64, sku string) (bool, error)
}

type service struct {
	repo Repository
}

// NewService wires an assignment service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assignments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Assign(ctx context.Context, input AssignInput) error {
	sku := strings.TrimSpace(input.SKU)
	if err := s.validatePair(input.HubID, sku); err != nil {
		return err
	}

	ok, err := s.repo.HubExists(ctx, input.HubID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up hub")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "hub not found")
	}

	ok, err = s.repo.ProductExists(ctx, sku)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "look up product")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	if err := s.repo.Create(ctx, &models.HubSKU{HubID: input.HubID, SKU: sku}); err != nil {
		// re-assigning an existing pair is a no-op
		if db.IsUniqueViolation(err, "") {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign sku to hub")
	}
	return nil
}

func (s *service) Unassign(ctx context.Context, hubID int64, sku string) error {
	sku = strings.TrimSpace(sku)
	if err := s.validatePair(hubID, sku); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, hubID, sku); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unassign sku from hub")
	}
	return nil
}

func (s *service) ListAssigned(ctx context.Context, hubID int64) ([]AssignedSKU, error) {
	if hubID <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}

	rows, err := s.repo.ListByHub(ctx, hubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list assigned skus")
	}
	return rows, nil
}

func (s *service) IsAssigned(ctx context.Context, hubID int64, sku string) (bool, error) {
	sku = strings.TrimSpace(sku)
	if err := s.validatePair(hubID, sku); err != nil {
		return false, err
	}

	ok, err := s.repo.Exists(ctx, hubID, sku)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check assignment")
	}
	return ok, nil
}

func (s *service) validatePair(hubID int64, sku string) error {
	if hubID <= models.HubIDHeadquarters {
		return pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}
	if sku == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	return nil
}
