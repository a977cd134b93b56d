package balances

// SKUBalance is a projected net quantity for one product at one hub. It is
// computed from the ledger on every read and never stored.
type SKUBalance struct {
	SKU      string `json:"sku" gorm:"column:sku"`
	Name     string `json:"name" gorm:"column:name"`
	Net      int    `json:"net" gorm:"column:net"`
	LowStock bool   `json:"low_stock" gorm:"-"`
}

// HubSKUBalance is one row of the cross-hub balance view.
type HubSKUBalance struct {
	HubID    int64  `json:"hub_id" gorm:"column:hub_id"`
	HubName  string `json:"hub_name" gorm:"column:hub_name"`
	SKU      string `json:"sku" gorm:"column:sku"`
	Name     string `json:"name" gorm:"column:name"`
	Net      int    `json:"net" gorm:"column:net"`
	LowStock bool   `json:"low_stock" gorm:"-"`
}
