package supplyrequests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

type notifier interface {
	Send(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error)
	SendToUsers(ctx context.Context, userIDs []uuid.UUID, message string) (int, error)
}

type adminDirectory interface {
	ListActiveIDsByRole(ctx context.Context, role enums.UserRole) ([]uuid.UUID, error)
}

// Service manages restock requests filed by hub staff and answered by HQ.
type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (*models.SupplyRequest, error)
	List(ctx context.Context, filters ListFilters) ([]models.SupplyRequest, error)
	Respond(ctx context.Context, input RespondInput) (*models.SupplyRequest, error)
}

type service struct {
	repo     Repository
	notifier notifier
	admins   adminDirectory
}

// NewService wires a supply request service. The notifier and the admin
// directory may be nil; filing and answering then produce no in-app messages.
func NewService(repo Repository, n notifier, admins adminDirectory) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("supply requests repository required")
	}
	return &service{repo: repo, notifier: n, admins: admins}, nil
}

func (s *service) Create(ctx context.Context, input CreateRequestInput) (*models.SupplyRequest, error) {
	notes := strings.TrimSpace(input.Notes)
	if input.HubID <= models.HubIDHeadquarters {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "hub id required")
	}
	if input.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notes == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "notes required")
	}

	request := &models.SupplyRequest{
		ID:     uuid.New(),
		HubID:  input.HubID,
		UserID: input.UserID,
		Notes:  notes,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create supply request")
	}

	if s.notifier != nil && s.admins != nil {
		// the request is already stored; notifying HQ is best effort
		if ids, err := s.admins.ListActiveIDsByRole(ctx, enums.UserRoleAdmin); err == nil {
			message := fmt.Sprintf("New supply request from hub %d: %s", request.HubID, notes)
			_, _ = s.notifier.SendToUsers(ctx, ids, message)
		}
	}

	return request, nil
}

func (s *service) List(ctx context.Context, filters ListFilters) ([]models.SupplyRequest, error) {
	requests, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list supply requests")
	}
	return requests, nil
}

func (s *service) Respond(ctx context.Context, input RespondInput) (*models.SupplyRequest, error) {
	response := strings.TrimSpace(input.Response)
	if input.RequestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if input.RespondedBy == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "responder id required")
	}
	if response == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "response required")
	}

	request, err := s.repo.FindByID(ctx, input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supply request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup supply request")
	}

	updated, err := s.repo.AttachResponse(ctx, input.RequestID, response, input.RespondedBy, time.Now().UTC())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "attach response")
	}
	if updated == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "supply request already answered")
	}

	if s.notifier != nil {
		// the response is already stored; notifying is best effort
		message := fmt.Sprintf("Your supply request was answered: %s", response)
		_, _ = s.notifier.Send(ctx, request.UserID, message)
	}

	return s.repo.FindByID(ctx, input.RequestID)
}
