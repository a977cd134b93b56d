package notifications

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

const defaultListLimit = 50

// Service defines notification send/list/read operations.
type Service interface {
	Send(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error)
	SendToUsers(ctx context.Context, userIDs []uuid.UUID, message string) (int, error)
	List(ctx context.Context, params ListParams) ([]models.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo Repository
}

// ListParams configures the notification list.
type ListParams struct {
	UserID     uuid.UUID
	Limit      int
	UnreadOnly bool
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "notifications repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Send(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error) {
	message = strings.TrimSpace(message)
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	notification := &models.Notification{
		ID:      uuid.New(),
		UserID:  userID,
		Message: message,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	return notification, nil
}

func (s *service) SendToUsers(ctx context.Context, userIDs []uuid.UUID, message string) (int, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "message required")
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		if userID == uuid.Nil {
			continue
		}
		notifications = append(notifications, models.Notification{
			ID:      uuid.New(),
			UserID:  userID,
			Message: message,
		})
	}
	if len(notifications) == 0 {
		return 0, nil
	}

	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notifications")
	}
	return len(notifications), nil
}

func (s *service) List(ctx context.Context, params ListParams) ([]models.Notification, error) {
	if params.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if params.Limit <= 0 {
		params.Limit = defaultListLimit
	}

	rows, err := s.repo.List(ctx, listNotificationsParams{
		UserID:     params.UserID,
		Limit:      params.Limit,
		UnreadOnly: params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return rows, nil
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if notificationID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, userID, notificationID, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	if userID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}

	count, err := s.repo.MarkAllRead(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notifications read")
	}
	return count, nil
}
