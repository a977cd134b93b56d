package models

import (
	"time"

	"github.com/google/uuid"
)

// Shipment is an informational record of inbound freight logged by a
// supplier. Shipments never move stock; only ledger transactions do.
type Shipment struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Supplier  string    `gorm:"column:supplier;not null"`
	Tracking  *string   `gorm:"column:tracking"`
	HubID     int64     `gorm:"column:hub_id;not null;index"`
	SKU       string    `gorm:"column:sku;not null"`
	Amount    int       `gorm:"column:amount;not null"`
	ShippedAt time.Time `gorm:"column:shipped_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
