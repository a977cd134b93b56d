package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/config"
	"github.com/tttsupply/inventory-backend/pkg/db"
	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/security"
)

const tempPasswordLength = 16

type repository interface {
	Create(ctx context.Context, dto CreateUserDTO) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	ListActiveIDsByRole(ctx context.Context, role enums.UserRole) ([]uuid.UUID, error)
}

// Service defines the admin-facing account management operations.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	List(ctx context.Context) ([]UserDTO, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ResetPassword(ctx context.Context, id uuid.UUID) (string, error)
	ListActiveIDsByRole(ctx context.Context, role enums.UserRole) ([]uuid.UUID, error)
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

// NewService wires a user management service.
func NewService(repo repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username required")
	}
	if len(input.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", input.Role))
	}
	if err := validateHubScope(input.Role, input.HubID); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateUserDTO{
		Username:     username,
		Email:        normalizeEmail(input.Email),
		PasswordHash: hash,
		Role:         input.Role,
		HubID:        input.HubID,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, *FromModel(&users[i]))
	}
	return dtos, nil
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update active flag")
	}
	return nil
}

func (s *service) ResetPassword(ctx context.Context, id uuid.UUID) (string, error) {
	if _, err := s.findUser(ctx, id); err != nil {
		return "", err
	}

	temp, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
	}
	hash, err := security.HashPassword(temp, s.passwordCfg)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.repo.UpdatePasswordHash(ctx, id, hash); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store password hash")
	}
	return temp, nil
}

func (s *service) ListActiveIDsByRole(ctx context.Context, role enums.UserRole) ([]uuid.UUID, error) {
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid role %q", role))
	}
	ids, err := s.repo.ListActiveIDsByRole(ctx, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users by role")
	}
	return ids, nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return user, nil
}

func validateHubScope(role enums.UserRole, hubID *int64) error {
	switch role {
	case enums.UserRoleHubStaff:
		if hubID == nil || *hubID <= models.HubIDHeadquarters {
			return pkgerrors.New(pkgerrors.CodeValidation, "hub staff require a hub id")
		}
	default:
		if hubID != nil {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("role %q must not carry a hub id", role))
		}
	}
	return nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*email))
	if value == "" {
		return nil
	}
	return &value
}
