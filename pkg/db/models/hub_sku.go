package models

// HubSKU declares that a product is tracked at a hub. Membership only: no
// history, no versioning. Removing a row never touches ledger rows.
type HubSKU struct {
	HubID int64  `gorm:"column:hub_id;primaryKey;autoIncrement:false"`
	SKU   string `gorm:"column:sku;primaryKey"`
}

// TableName overrides the default pluralization.
func (HubSKU) TableName() string {
	return "hub_skus"
}
