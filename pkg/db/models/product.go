package models

import "time"

// Product is reference data keyed by SKU. Cosmetic fields may change; SKUs are
// never reused or deleted in normal operation.
type Product struct {
	SKU       string    `gorm:"column:sku;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Barcode   *string   `gorm:"column:barcode"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
