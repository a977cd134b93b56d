package models

import (
	"time"

	"github.com/google/uuid"
)

// SupplyRequest is a free-text restock note filed by hub staff. HQ may attach
// a single response; the original note is never edited.
type SupplyRequest struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	HubID       int64      `gorm:"column:hub_id;not null;index"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	Notes       string     `gorm:"column:notes;not null"`
	Response    *string    `gorm:"column:response"`
	RespondedBy *uuid.UUID `gorm:"column:responded_by;type:uuid"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
