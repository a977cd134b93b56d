package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

type fakeRepository struct {
	createFn func(ctx context.Context, txn *models.InventoryTransaction) error
	listFn   func(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error)
	dailyFn  func(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, txn *models.InventoryTransaction) error {
	if f.createFn != nil {
		return f.createFn(ctx, txn)
	}
	return nil
}

func (f *fakeRepository) List(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error) {
	if f.listFn != nil {
		return f.listFn(ctx, filters)
	}
	return nil, nil
}

func (f *fakeRepository) DailyOutTotals(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error) {
	if f.dailyFn != nil {
		return f.dailyFn(ctx, hubID, sku)
	}
	return nil, nil
}

func TestService_RecordTransaction(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	comment := "restock after delivery"
	input := RecordTransactionInput{
		SKU:      "  SKU-100 ",
		Action:   enums.TxActionIn,
		Quantity: 50,
		HubID:    3,
		UserID:   uuid.New(),
		Comment:  &comment,
	}

	var created *models.InventoryTransaction
	repo.createFn = func(ctx context.Context, txn *models.InventoryTransaction) error {
		created = txn
		return nil
	}

	got, err := svc.RecordTransaction(context.Background(), input)
	if err != nil {
		t.Fatalf("RecordTransaction error: %v", err)
	}
	if created == nil {
		t.Fatal("expected ledger transaction to be created")
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected id to be assigned")
	}
	if created.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be assigned")
	}
	if created.SKU != "SKU-100" {
		t.Fatalf("expected trimmed sku, got %q", created.SKU)
	}
	if created.Action != input.Action || created.Quantity != input.Quantity || created.HubID != input.HubID {
		t.Fatalf("unexpected ledger transaction data: %+v", created)
	}
	if created.Comment == nil || *created.Comment != comment {
		t.Fatalf("comment mismatch: %v", created.Comment)
	}
	if got != created {
		t.Fatalf("service should return created transaction")
	}
}

func TestService_RecordTransactionValidation(t *testing.T) {
	repo := &fakeRepository{}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	valid := RecordTransactionInput{
		SKU:      "SKU-100",
		Action:   enums.TxActionOut,
		Quantity: 5,
		HubID:    1,
		UserID:   uuid.New(),
	}

	tests := []struct {
		name   string
		mutate func(in *RecordTransactionInput)
	}{
		{"missing sku", func(in *RecordTransactionInput) { in.SKU = "  " }},
		{"invalid action", func(in *RecordTransactionInput) { in.Action = "MOVE" }},
		{"zero quantity", func(in *RecordTransactionInput) { in.Quantity = 0 }},
		{"negative quantity", func(in *RecordTransactionInput) { in.Quantity = -4 }},
		{"headquarters hub", func(in *RecordTransactionInput) { in.HubID = models.HubIDHeadquarters }},
		{"missing user", func(in *RecordTransactionInput) { in.UserID = uuid.Nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			repo.createFn = func(ctx context.Context, txn *models.InventoryTransaction) error {
				t.Fatal("repository should not be called on validation failure")
				return nil
			}

			_, err := svc.RecordTransaction(context.Background(), input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var appErr *pkgerrors.Error
			if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestService_RecordTransactionStoreFailure(t *testing.T) {
	repo := &fakeRepository{
		createFn: func(ctx context.Context, txn *models.InventoryTransaction) error {
			return errors.New("disk full")
		},
	}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.RecordTransaction(context.Background(), RecordTransactionInput{
		SKU:      "SKU-100",
		Action:   enums.TxActionIn,
		Quantity: 1,
		HubID:    1,
		UserID:   uuid.New(),
	})
	if err == nil {
		t.Fatal("expected dependency error")
	}
	var appErr *pkgerrors.Error
	if !errors.As(err, &appErr) || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestService_QueryTransactionsLimits(t *testing.T) {
	var seen TransactionFilters
	repo := &fakeRepository{
		listFn: func(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error) {
			seen = filters
			return nil, nil
		},
	}
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	if _, err := svc.QueryTransactions(context.Background(), TransactionFilters{}); err != nil {
		t.Fatalf("QueryTransactions error: %v", err)
	}
	if seen.Limit != defaultListLimit {
		t.Fatalf("expected default limit %d, got %d", defaultListLimit, seen.Limit)
	}

	if _, err := svc.QueryTransactions(context.Background(), TransactionFilters{Limit: 10000}); err != nil {
		t.Fatalf("QueryTransactions error: %v", err)
	}
	if seen.Limit != maxListLimit {
		t.Fatalf("expected capped limit %d, got %d", maxListLimit, seen.Limit)
	}
}

func TestService_QueryTransactionsRejectsInvertedRange(t *testing.T) {
	svc, err := NewService(&fakeRepository{}, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	from := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	to := from.Add(-time.Hour)
	_, err = svc.QueryTransactions(context.Background(), TransactionFilters{From: &from, To: &to})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestService_QueryDailyOutTotalsRequiresHub(t *testing.T) {
	svc, err := NewService(&fakeRepository{}, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	_, err = svc.QueryDailyOutTotals(context.Background(), models.HubIDHeadquarters, "")
	if err == nil {
		t.Fatal("expected validation error")
	}
}
