package balances

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
)

func setupBalancesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:balances_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schemas := []string{
		`CREATE TABLE IF NOT EXISTS hubs (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  created_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  sku TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  barcode TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS hub_skus (
  hub_id INTEGER NOT NULL,
  sku TEXT NOT NULL,
  PRIMARY KEY (hub_id, sku)
);`,
		`CREATE TABLE IF NOT EXISTS inventory_transactions (
  id TEXT PRIMARY KEY,
  occurred_at DATETIME NOT NULL,
  sku TEXT NOT NULL,
  action TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  hub_id INTEGER NOT NULL,
  user_id TEXT NOT NULL,
  comment TEXT
);`,
	}
	for _, schema := range schemas {
		require.NoError(t, db.Exec(schema).Error)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.Hub{ID: 1, Name: "North Hub"}).Error)
	require.NoError(t, db.Create(&models.Hub{ID: 2, Name: "East Hub"}).Error)
	require.NoError(t, db.Create(&models.Product{SKU: "SKU-A", Name: "Box Small"}).Error)
	require.NoError(t, db.Create(&models.Product{SKU: "SKU-B", Name: "Box Large"}).Error)
	require.NoError(t, db.Create(&models.HubSKU{HubID: 1, SKU: "SKU-A"}).Error)
	require.NoError(t, db.Create(&models.HubSKU{HubID: 1, SKU: "SKU-B"}).Error)
	require.NoError(t, db.Create(&models.HubSKU{HubID: 2, SKU: "SKU-A"}).Error)
}

func seedTxn(t *testing.T, db *gorm.DB, hubID int64, sku string, action enums.TxAction, qty int, occurred time.Time) {
	t.Helper()

	require.NoError(t, db.Create(&models.InventoryTransaction{
		ID:         uuid.New(),
		OccurredAt: occurred,
		SKU:        sku,
		Action:     action,
		Quantity:   qty,
		HubID:      hubID,
		UserID:     uuid.New(),
	}).Error)
}

func TestRepositoryHubBalancesProjectsNetFromLedger(t *testing.T) {
	db := setupBalancesTestDB(t)
	seedCatalog(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedTxn(t, db, 1, "SKU-A", enums.TxActionIn, 50, base)
	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 12, base.Add(time.Hour))
	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 3, base.Add(2*time.Hour))
	// other hubs never bleed into hub 1
	seedTxn(t, db, 2, "SKU-A", enums.TxActionIn, 99, base)

	rows, err := repo.HubBalances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordered by product name
	assert.Equal(t, "SKU-B", rows[0].SKU)
	assert.Equal(t, "Box Large", rows[0].Name)
	assert.Equal(t, 0, rows[0].Net)

	assert.Equal(t, "SKU-A", rows[1].SKU)
	assert.Equal(t, 35, rows[1].Net)
}

func TestRepositoryHubBalancesAllowsNegativeNet(t *testing.T) {
	db := setupBalancesTestDB(t)
	seedCatalog(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	occurred := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 7, occurred)

	rows, err := repo.HubBalances(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, -7, rows[1].Net)
}

func TestRepositoryHubBalancesIgnoresUnassignedSKUs(t *testing.T) {
	db := setupBalancesTestDB(t)
	seedCatalog(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	// ledger rows for a SKU the hub no longer tracks stay put but do not
	// appear in the projection
	occurred := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedTxn(t, db, 2, "SKU-B", enums.TxActionIn, 10, occurred)

	rows, err := repo.HubBalances(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SKU-A", rows[0].SKU)
}

func TestRepositoryGlobalBalances(t *testing.T) {
	db := setupBalancesTestDB(t)
	seedCatalog(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	seedTxn(t, db, 1, "SKU-A", enums.TxActionIn, 20, base)
	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 8, base.Add(time.Hour))
	seedTxn(t, db, 2, "SKU-A", enums.TxActionIn, 5, base)
	// hub 2 never assigned SKU-B, but the pair has activity so it shows up
	seedTxn(t, db, 2, "SKU-B", enums.TxActionIn, 7, base)

	rows, err := repo.GlobalBalances(ctx)
	require.NoError(t, err)

	// SKU-B is assigned to hub 1 but has no ledger rows there; unlike the
	// per-hub view, the cross-hub view omits zero-activity pairs.
	require.Len(t, rows, 3)

	// ordered by hub name, product name
	assert.Equal(t, "East Hub", rows[0].HubName)
	assert.Equal(t, "Box Large", rows[0].Name)
	assert.Equal(t, 7, rows[0].Net)

	assert.Equal(t, "East Hub", rows[1].HubName)
	assert.Equal(t, "SKU-A", rows[1].SKU)
	assert.Equal(t, 5, rows[1].Net)

	assert.Equal(t, "North Hub", rows[2].HubName)
	assert.Equal(t, "SKU-A", rows[2].SKU)
	assert.Equal(t, 12, rows[2].Net)
}

func TestRepositoryOutTotalBetween(t *testing.T) {
	db := setupBalancesTestDB(t)
	seedCatalog(t, db)
	repo := NewRepository(db)
	ctx := context.Background()

	dayStart := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 4, dayStart.Add(9*time.Hour))
	seedTxn(t, db, 1, "SKU-B", enums.TxActionOut, 6, dayStart.Add(15*time.Hour))
	// outside the window or wrong action/hub
	seedTxn(t, db, 1, "SKU-A", enums.TxActionOut, 100, dayStart.Add(-time.Minute))
	seedTxn(t, db, 1, "SKU-A", enums.TxActionIn, 100, dayStart.Add(time.Hour))
	seedTxn(t, db, 2, "SKU-A", enums.TxActionOut, 100, dayStart.Add(time.Hour))

	total, err := repo.OutTotalBetween(ctx, 1, dayStart, dayEnd)
	require.NoError(t, err)
	assert.Equal(t, 10, total)

	total, err = repo.OutTotalBetween(ctx, 1, dayEnd, dayEnd.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
