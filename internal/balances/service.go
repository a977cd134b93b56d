package balances

import (
	"context"
	"fmt"
	"time"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

// Service projects balances from the ledger. Balances are recomputed on every
// call; nothing here caches or stores a running total.
type Service interface {
	GetHubBalances(ctx context.Context, hubID int64) ([]SKUBalance, error)
	GetGlobalBalances(ctx context.Context) ([]HubSKUBalance, error)
	GetTodayOutTotal(ctx context.Context, hubID int64) (int, error)
	IsLowStock(net int) bool
}

type service struct {
	repo      Repository
	threshold int
	now       func() time.Time
}

// NewService wires a balance service. threshold is the net quantity below
// which a SKU is flagged as low stock.
func NewService(repo Repository, threshold int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("balances repository required")
	}
	if threshold < 0 {
		return nil, fmt.Errorf("low stock threshold must not be negative")
	}
	return &service{
		repo:      repo,
		threshold: threshold,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) GetHubBalances(ctx context.Context, hubID int64) ([]SKUBalance, error) {
	if hubID <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}

	rows, err := s.repo.HubBalances(ctx, hubID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "project hub balances")
	}
	for i := range rows {
		rows[i].LowStock = s.IsLowStock(rows[i].Net)
	}
	return rows, nil
}

func (s *service) GetGlobalBalances(ctx context.Context) ([]HubSKUBalance, error) {
	rows, err := s.repo.GlobalBalances(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "project global balances")
	}
	for i := range rows {
		rows[i].LowStock = s.IsLowStock(rows[i].Net)
	}
	return rows, nil
}

func (s *service) GetTodayOutTotal(ctx context.Context, hubID int64) (int, error) {
	if hubID <= models.HubIDHeadquarters {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}

	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	total, err := s.repo.OutTotalBetween(ctx, hubID, start, end)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum today's out quantity")
	}
	return total, nil
}

func (s *service) IsLowStock(net int) bool {
	return net < s.threshold
}
