package controllers

import (
	"net/http"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	hubsvc "github.com/tttsupply/inventory-backend/internal/hubs"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

// CreateHub registers a new storage hub.
func CreateHub(svc hubsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hub service unavailable"))
			return
		}

		var payload hubsvc.CreateHubInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hub, err := svc.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, hub)
	}
}

type renameHubRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// RenameHub changes a hub's display name.
func RenameHub(svc hubsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hub service unavailable"))
			return
		}

		hubID, err := parseHubIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload renameHubRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hub, err := svc.Rename(r.Context(), hubID, payload.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hub)
	}
}

// GetHub fetches one hub.
func GetHub(svc hubsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hub service unavailable"))
			return
		}

		hubID, err := parseHubIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hub, err := svc.Get(r.Context(), hubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hub)
	}
}

// ListHubs returns every hub ordered by name.
func ListHubs(svc hubsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "hub service unavailable"))
			return
		}

		hubs, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hubs)
	}
}
