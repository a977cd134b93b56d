package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/enums"
)

// User is a dashboard account. HubID is nil for HQ admins and suppliers;
// hub staff are pinned to exactly one hub.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Username     string         `gorm:"column:username;not null;uniqueIndex"`
	Email        *string        `gorm:"column:email"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	Role         enums.UserRole `gorm:"column:role;not null"`
	HubID        *int64         `gorm:"column:hub_id"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
