package shipments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

func setupShipmentsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:shipments_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS shipments (
  id TEXT PRIMARY KEY,
  supplier TEXT NOT NULL,
  tracking TEXT,
  hub_id INTEGER NOT NULL,
  sku TEXT NOT NULL,
  amount INTEGER NOT NULL,
  shipped_at DATETIME NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestService_RecordDefaultsShippedAt(t *testing.T) {
	db := setupShipmentsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	fixed := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	tracking := " 1Z999AA10123456784 "
	shipment, err := svc.Record(ctx, RecordShipmentInput{
		Supplier: " Acme Freight ",
		Tracking: &tracking,
		HubID:    1,
		SKU:      "SKU-A",
		Amount:   40,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Freight", shipment.Supplier)
	require.NotNil(t, shipment.Tracking)
	assert.Equal(t, "1Z999AA10123456784", *shipment.Tracking)
	assert.True(t, shipment.ShippedAt.Equal(fixed))
}

func TestService_RecordValidation(t *testing.T) {
	db := setupShipmentsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	valid := RecordShipmentInput{Supplier: "Acme", HubID: 1, SKU: "SKU-A", Amount: 5}

	tests := []struct {
		name   string
		mutate func(in *RecordShipmentInput)
	}{
		{"blank supplier", func(in *RecordShipmentInput) { in.Supplier = "  " }},
		{"blank sku", func(in *RecordShipmentInput) { in.SKU = "" }},
		{"headquarters hub", func(in *RecordShipmentInput) { in.HubID = models.HubIDHeadquarters }},
		{"zero amount", func(in *RecordShipmentInput) { in.Amount = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := valid
			tc.mutate(&input)

			_, err := svc.Record(ctx, input)
			var appErr *pkgerrors.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
		})
	}
}

func TestService_ListFilters(t *testing.T) {
	db := setupShipmentsTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seed := []RecordShipmentInput{
		{Supplier: "Acme", HubID: 1, SKU: "SKU-A", Amount: 10, ShippedAt: &base},
		{Supplier: "Acme", HubID: 2, SKU: "SKU-A", Amount: 20, ShippedAt: ptrTime(base.AddDate(0, 0, 5))},
		{Supplier: "Globex", HubID: 1, SKU: "SKU-B", Amount: 30, ShippedAt: ptrTime(base.AddDate(0, 0, 10))},
	}
	for _, input := range seed {
		_, err := svc.Record(ctx, input)
		require.NoError(t, err)
	}

	hubOne := int64(1)
	rows, err := svc.List(ctx, ListFilters{HubID: &hubOne})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// newest first
	assert.Equal(t, "Globex", rows[0].Supplier)

	rows, err = svc.List(ctx, ListFilters{Supplier: "Acme"})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	from := base.AddDate(0, 0, 3)
	to := base.AddDate(0, 0, 8)
	rows, err = svc.List(ctx, ListFilters{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 20, rows[0].Amount)
}

func ptrTime(t time.Time) *time.Time {
	return &t
}
