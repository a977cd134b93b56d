package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/enums"
)

// InventoryTransaction is one immutable row in the stock-movement ledger.
// Rows are only ever appended; corrections are compensating transactions.
// The sku column is deliberately not a foreign key: orphan SKUs stay in the
// ledger and product joins simply omit them.
type InventoryTransaction struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	OccurredAt time.Time      `gorm:"column:occurred_at;not null;index"`
	SKU        string         `gorm:"column:sku;not null;index"`
	Action     enums.TxAction `gorm:"column:action;not null"`
	Quantity   int            `gorm:"column:quantity;not null"`
	HubID      int64          `gorm:"column:hub_id;not null;index"`
	UserID     uuid.UUID      `gorm:"column:user_id;type:uuid;not null"`
	Comment    *string        `gorm:"column:comment"`
}
