package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Email       *string        `json:"email,omitempty"`
	Role        enums.UserRole `json:"role"`
	HubID       *int64         `json:"hub_id,omitempty"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserInput holds the data an admin submits for a new account.
type CreateUserInput struct {
	Username string         `json:"username" validate:"required,min=3,max=64"`
	Email    *string        `json:"email,omitempty" validate:"omitempty,email"`
	Password string         `json:"password" validate:"required,min=8"`
	Role     enums.UserRole `json:"role" validate:"required"`
	HubID    *int64         `json:"hub_id,omitempty"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Username     string
	Email        *string
	PasswordHash string
	Role         enums.UserRole
	HubID        *int64
	IsActive     *bool
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		HubID:       u.HubID,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	return &models.User{
		ID:           uuid.New(),
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		HubID:        c.HubID,
		IsActive:     isActive,
	}
}
