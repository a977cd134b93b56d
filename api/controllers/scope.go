package controllers

import (
	"context"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/api/middleware"
	"github.com/tttsupply/inventory-backend/pkg/db/models"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
)

// resolveHubID reconciles the caller's hub scope with an explicitly requested
// hub. Hub-scoped accounts may only act on their own hub; HQ accounts must
// name one.
func resolveHubID(ctx context.Context, requested *int64) (int64, error) {
	if scoped := middleware.HubIDFromContext(ctx); scoped != nil {
		if requested != nil && *requested != *scoped {
			return 0, pkgerrors.New(pkgerrors.CodeForbidden, "hub scope mismatch")
		}
		return *scoped, nil
	}
	if requested == nil || *requested <= models.HubIDHeadquarters {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "hub_id is required")
	}
	return *requested, nil
}

// optionalHubID is the list variant: hub-scoped accounts are pinned to their
// hub, HQ accounts may filter by any hub or none.
func optionalHubID(ctx context.Context, requested *int64) (*int64, error) {
	if scoped := middleware.HubIDFromContext(ctx); scoped != nil {
		if requested != nil && *requested != *scoped {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "hub scope mismatch")
		}
		return scoped, nil
	}
	return requested, nil
}

func requireUserID(ctx context.Context) (uuid.UUID, error) {
	userID := middleware.UserIDFromContext(ctx)
	if userID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	return userID, nil
}
