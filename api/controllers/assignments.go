package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	"github.com/tttsupply/inventory-backend/internal/assignments"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

type assignRequest struct {
	HubID int64  `json:"hub_id" validate:"required,gt=0"`
	SKU   string `json:"sku" validate:"required,max=64"`
}

// AssignSKU registers a hub/SKU pair so the hub's balance view includes it.
func AssignSKU(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		var payload assignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := assignments.AssignInput{HubID: payload.HubID, SKU: payload.SKU}
		if err := svc.Assign(r.Context(), input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"hub_id": payload.HubID,
			"sku":    strings.TrimSpace(payload.SKU),
		})
	}
}

// UnassignSKU removes a hub/SKU pair. Ledger history for the pair stays put.
func UnassignSKU(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		hubID, err := parseHubIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := chi.URLParam(r, "sku")
		if err := svc.Unassign(r.Context(), hubID, sku); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"hub_id": hubID, "sku": sku})
	}
}

// ListAssignedSKUs returns the hub's tracked SKUs joined with the catalog.
func ListAssignedSKUs(svc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assignment service unavailable"))
			return
		}

		hubID, err := parseHubIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := resolveHubID(r.Context(), &hubID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.ListAssigned(r.Context(), hubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

func parseHubIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "hubID")
	hubID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid hub id")
	}
	return hubID, nil
}
