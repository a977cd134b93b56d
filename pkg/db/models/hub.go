package models

import "time"

// HubIDHeadquarters is the reserved "no hub" scope for HQ/admin accounts. It
// never holds stock and never appears in ledger rows.
const HubIDHeadquarters int64 = 0

// Hub is a stock-holding location.
type Hub struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
