package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
)

// Repository manages persistence for ledger transactions. Rows are append
// only: there is deliberately no update or delete operation.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, txn *models.InventoryTransaction) error
	List(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error)
	DailyOutTotals(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, txn *models.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *repository) List(ctx context.Context, filters TransactionFilters) ([]models.InventoryTransaction, error) {
	query := r.db.WithContext(ctx).Model(&models.InventoryTransaction{})

	if filters.HubID != nil {
		query = query.Where("hub_id = ?", *filters.HubID)
	}
	if filters.SKU != "" {
		query = query.Where("sku = ?", filters.SKU)
	}
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}
	if filters.From != nil {
		query = query.Where("occurred_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("occurred_at < ?", *filters.To)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var txns []models.InventoryTransaction
	if err := query.
		Order("occurred_at DESC, id DESC").
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}

// dailyOutTotalsQuery groups OUT rows by calendar day. DATE() resolves in both
// Postgres and SQLite.
const dailyOutTotalsQuery = `
SELECT CAST(DATE(occurred_at) AS TEXT) AS day, sku, SUM(quantity) AS total
FROM inventory_transactions
WHERE hub_id = ? AND action = 'OUT' AND (? = '' OR sku = ?)
GROUP BY DATE(occurred_at), sku
ORDER BY day DESC, sku ASC
`

func (r *repository) DailyOutTotals(ctx context.Context, hubID int64, sku string) ([]DailyOutTotal, error) {
	var totals []DailyOutTotal
	if err := r.db.WithContext(ctx).
		Raw(dailyOutTotalsQuery, hubID, sku, sku).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}
