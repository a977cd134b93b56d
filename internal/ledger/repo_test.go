package ledger

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

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:ledger_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	transactions := `
CREATE TABLE IF NOT EXISTS inventory_transactions (
  id TEXT PRIMARY KEY,
  occurred_at DATETIME NOT NULL,
  sku TEXT NOT NULL,
  action TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  hub_id INTEGER NOT NULL,
  user_id TEXT NOT NULL,
  comment TEXT
);`
	require.NoError(t, db.Exec(transactions).Error)
	return db
}

func appendTxn(t *testing.T, db *gorm.DB, hubID int64, sku string, action enums.TxAction, qty int, occurred time.Time) *models.InventoryTransaction {
	t.Helper()

	txn := &models.InventoryTransaction{
		ID:         uuid.New(),
		OccurredAt: occurred,
		SKU:        sku,
		Action:     action,
		Quantity:   qty,
		HubID:      hubID,
		UserID:     uuid.New(),
	}
	require.NoError(t, db.Create(txn).Error)
	return txn
}

func TestRepositoryListFiltersAndOrders(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	appendTxn(t, db, 1, "SKU-A", enums.TxActionIn, 50, base)
	appendTxn(t, db, 1, "SKU-A", enums.TxActionOut, 12, base.Add(2*time.Hour))
	appendTxn(t, db, 1, "SKU-B", enums.TxActionIn, 7, base.Add(time.Hour))
	appendTxn(t, db, 2, "SKU-A", enums.TxActionIn, 30, base.Add(3*time.Hour))

	hubOne := int64(1)
	txns, err := repo.List(ctx, TransactionFilters{HubID: &hubOne})
	require.NoError(t, err)
	require.Len(t, txns, 3)
	// newest first
	assert.Equal(t, "SKU-A", txns[0].SKU)
	assert.Equal(t, enums.TxActionOut, txns[0].Action)
	assert.Equal(t, "SKU-B", txns[1].SKU)

	txns, err = repo.List(ctx, TransactionFilters{HubID: &hubOne, SKU: "SKU-A"})
	require.NoError(t, err)
	require.Len(t, txns, 2)

	out := enums.TxActionOut
	txns, err = repo.List(ctx, TransactionFilters{Action: &out})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, 12, txns[0].Quantity)

	from := base.Add(90 * time.Minute)
	to := base.Add(150 * time.Minute)
	txns, err = repo.List(ctx, TransactionFilters{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, enums.TxActionOut, txns[0].Action)

	txns, err = repo.List(ctx, TransactionFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, txns, 2)
}

func TestRepositoryListTiebreaksOnID(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	occurred := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	first := appendTxn(t, db, 1, "SKU-A", enums.TxActionIn, 1, occurred)
	second := appendTxn(t, db, 1, "SKU-A", enums.TxActionIn, 2, occurred)

	txns, err := repo.List(ctx, TransactionFilters{})
	require.NoError(t, err)
	require.Len(t, txns, 2)

	want := []uuid.UUID{first.ID, second.ID}
	if want[0].String() < want[1].String() {
		want[0], want[1] = want[1], want[0]
	}
	assert.Equal(t, want[0], txns[0].ID)
	assert.Equal(t, want[1], txns[1].ID)
}

func TestRepositoryDailyOutTotals(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	day1 := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 8, 11, 14, 0, 0, 0, time.UTC)
	appendTxn(t, db, 1, "SKU-A", enums.TxActionOut, 5, day1)
	appendTxn(t, db, 1, "SKU-A", enums.TxActionOut, 3, day1.Add(4*time.Hour))
	appendTxn(t, db, 1, "SKU-A", enums.TxActionOut, 2, day2)
	appendTxn(t, db, 1, "SKU-B", enums.TxActionOut, 9, day1)
	// IN rows and other hubs never contribute
	appendTxn(t, db, 1, "SKU-A", enums.TxActionIn, 100, day1)
	appendTxn(t, db, 2, "SKU-A", enums.TxActionOut, 50, day1)

	totals, err := repo.DailyOutTotals(ctx, 1, "")
	require.NoError(t, err)
	require.Len(t, totals, 3)
	assert.Equal(t, DailyOutTotal{Day: "2026-08-11", SKU: "SKU-A", Total: 2}, totals[0])
	assert.Equal(t, DailyOutTotal{Day: "2026-08-10", SKU: "SKU-A", Total: 8}, totals[1])
	assert.Equal(t, DailyOutTotal{Day: "2026-08-10", SKU: "SKU-B", Total: 9}, totals[2])

	totals, err = repo.DailyOutTotals(ctx, 1, "SKU-B")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, 9, totals[0].Total)
}

func TestRepositoryWithTxSharesTransaction(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	tx := db.Begin()
	require.NoError(t, tx.Error)

	scoped := repo.WithTx(tx)
	txn := &models.InventoryTransaction{
		ID:         uuid.New(),
		OccurredAt: time.Now().UTC(),
		SKU:        "SKU-A",
		Action:     enums.TxActionIn,
		Quantity:   1,
		HubID:      1,
		UserID:     uuid.New(),
	}
	require.NoError(t, scoped.Create(ctx, txn))
	require.NoError(t, tx.Rollback().Error)

	txns, err := repo.List(ctx, TransactionFilters{})
	require.NoError(t, err)
	assert.Empty(t, txns)
}
