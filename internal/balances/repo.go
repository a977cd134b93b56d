package balances

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// Repository reads projected balances straight from the ledger tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	HubBalances(ctx context.Context, hubID int64) ([]SKUBalance, error)
	GlobalBalances(ctx context.Context) ([]HubSKUBalance, error)
	OutTotalBetween(ctx context.Context, hubID int64, from, to time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a balance repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// hubBalancesQuery walks the hub's assigned SKUs so products with no ledger
// rows still project as zero.
const hubBalancesQuery = `
SELECT p.sku AS sku, p.name AS name,
       COALESCE(SUM(CASE WHEN t.action = 'IN' THEN t.quantity
                         WHEN t.action = 'OUT' THEN -t.quantity END), 0) AS net
FROM hub_skus hs
JOIN products p ON p.sku = hs.sku
LEFT JOIN inventory_transactions t ON t.sku = hs.sku AND t.hub_id = hs.hub_id
WHERE hs.hub_id = ?
GROUP BY p.sku, p.name
ORDER BY p.name ASC, p.sku ASC
`

func (r *repository) HubBalances(ctx context.Context, hubID int64) ([]SKUBalance, error) {
	var rows []SKUBalance
	if err := r.db.WithContext(ctx).
		Raw(hubBalancesQuery, hubID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// globalBalancesQuery walks the ledger itself, so only (hub, sku) pairs with
// at least one transaction appear. The per-hub view includes zero-activity
// assigned SKUs; the cross-hub view does not.
const globalBalancesQuery = `
SELECT t.hub_id AS hub_id, h.name AS hub_name, p.sku AS sku, p.name AS name,
       SUM(CASE WHEN t.action = 'IN' THEN t.quantity
                WHEN t.action = 'OUT' THEN -t.quantity END) AS net
FROM inventory_transactions t
JOIN hubs h ON h.id = t.hub_id
JOIN products p ON p.sku = t.sku
GROUP BY t.hub_id, h.name, p.sku, p.name
ORDER BY h.name ASC, p.name ASC, p.sku ASC
`

func (r *repository) GlobalBalances(ctx context.Context) ([]HubSKUBalance, error) {
	var rows []HubSKUBalance
	if err := r.db.WithContext(ctx).
		Raw(globalBalancesQuery).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const outTotalQuery = `
SELECT COALESCE(SUM(quantity), 0) AS total
FROM inventory_transactions
WHERE hub_id = ? AND action = 'OUT' AND occurred_at >= ? AND occurred_at < ?
`

func (r *repository) OutTotalBetween(ctx context.Context, hubID int64, from, to time.Time) (int, error) {
	var total int
	if err := r.db.WithContext(ctx).
		Raw(outTotalQuery, hubID, from, to).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
