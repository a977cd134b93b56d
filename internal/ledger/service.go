package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/metrics"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Service defines operations that record and read ledger transactions.
type Service interface {
	RecordTransaction(ctx context.Context, input RecordTransactionInput) (*models.InventoryTransaction, error)
	QueryTransactions(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error)
	QueryDailyOutTotals(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error)
}

type service struct {
	repo    Repository
	metrics *metrics.LedgerMetrics
	now     func() time.Time
}

// NewService wires a ledger service with the provided repository. Metrics may
// be nil.
func NewService(repo Repository, ledgerMetrics *metrics.LedgerMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{
		repo:    repo,
		metrics: ledgerMetrics,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) RecordTransaction(ctx context.Context, input RecordTransactionInput) (*models.InventoryTransaction, error) {
	if err := s.validateRecordInput(input); err != nil {
		s.metrics.IncRejected("validation")
		return nil, err
	}

	txn := &models.InventoryTransaction{
		ID:         uuid.New(),
		OccurredAt: s.now(),
		SKU:        strings.TrimSpace(input.SKU),
		Action:     input.Action,
		Quantity:   input.Quantity,
		HubID:      input.HubID,
		UserID:     input.UserID,
		Comment:    input.Comment,
	}

	start := s.now()
	if err := s.repo.Create(ctx, txn); err != nil {
		s.metrics.IncRejected("store")
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append ledger transaction")
	}
	s.metrics.IncRecorded(txn.Action.String())
	s.metrics.ObserveRecordDuration(txn.Action.String(), s.now().Sub(start))

	return txn, nil
}

func (s *service) validateRecordInput(input RecordTransactionInput) error {
	if strings.TrimSpace(input.SKU) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if !input.Action.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid action %q", input.Action))
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if input.HubID <= models.HubIDHeadquarters {
		return pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}
	if input.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	return nil
}

func (s *service) QueryTransactions(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error) {
	if filters.Action != nil && !filters.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid action %q", *filters.Action))
	}
	if filters.From != nil && filters.To != nil && filters.To.Before(*filters.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "time range is inverted")
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultListLimit
	}
	if filters.Limit > maxListLimit {
		filters.Limit = maxListLimit
	}

	txns, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ledger transactions")
	}
	return txns, nil
}

func (s *service) QueryDailyOutTotals(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error) {
	if hubID <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}

	totals, err := s.repo.DailyOutTotals(ctx, hubID, strings.TrimSpace(sku))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate daily out totals")
	}
	return totals, nil
}
