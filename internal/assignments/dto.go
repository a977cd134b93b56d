package assignments

// AssignInput names the hub/SKU pair to track.
type AssignInput struct {
	HubID int64  `json:"hub_id"`
	SKU   string `json:"sku"`
}

// AssignedSKU is one tracked product at a hub, joined with its catalog row.
type AssignedSKU struct {
	SKU     string  `json:"sku" gorm:"column:sku"`
	Name    string  `json:"name" gorm:"column:name"`
	Barcode *string `json:"barcode,omitempty" gorm:"column:barcode"`
}
