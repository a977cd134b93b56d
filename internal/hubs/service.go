package hubs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

// CreateHubInput names a new stock-holding location.
type CreateHubInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// Service manages hubs.
type Service interface {
	Create(ctx context.Context, input CreateHubInput) (*models.Hub, error)
	Rename(ctx context.Context, id int64, name string) (*models.Hub, error)
	Get(ctx context.Context, id int64) (*models.Hub, error)
	List(ctx context.Context) ([]models.Hub, error)
}

type service struct {
	repo Repository
}

// NewService wires a hub service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("hubs repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateHubInput) (*models.Hub, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}

	hub := &models.Hub{Name: name}
	if err := s.repo.Create(ctx, hub); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create hub")
	}
	return hub, nil
}

func (s *service) Rename(ctx context.Context, id int64, name string) (*models.Hub, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rename hub")
	}
	return s.Get(ctx, id)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Hub, error) {
	if id <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}

	hub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "hub not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup hub")
	}
	return hub, nil
}

func (s *service) List(ctx context.Context) ([]models.Hub, error) {
	hubs, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list hubs")
	}
	return hubs, nil
}
