package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	"github.com/tttsupply/inventory-backend/internal/supplyrequests"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

type createSupplyRequestRequest struct {
	HubID *int64 `json:"hub_id,omitempty"`
	Notes string `json:"notes" validate:"required,max=2000"`
}

// CreateSupplyRequest files a restock note for the caller's hub.
func CreateSupplyRequest(svc supplyrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supply request service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createSupplyRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hubID, err := resolveHubID(r.Context(), payload.HubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), supplyrequests.CreateRequestInput{
			HubID:  hubID,
			UserID: userID,
			Notes:  payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// ListSupplyRequests returns restock notes, newest first.
func ListSupplyRequests(svc supplyrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supply request service unavailable"))
			return
		}

		var filters supplyrequests.ListFilters

		requested, err := validators.ParseQueryInt64(r, "hub_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		hubID, err := optionalHubID(r.Context(), requested)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.HubID = hubID

		openOnly, err := validators.ParseQueryBool(r, "open_only")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.OpenOnly = openOnly

		from, err := validators.ParseQueryTime(r, "from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.From = from

		to, err := validators.ParseQueryTime(r, "to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.To = to

		rows, err := svc.List(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

type respondSupplyRequestRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

// RespondSupplyRequest attaches HQ's answer to an open restock note.
func RespondSupplyRequest(svc supplyrequests.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supply request service unavailable"))
			return
		}

		responderID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request id"))
			return
		}

		var payload respondSupplyRequestRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Respond(r.Context(), supplyrequests.RespondInput{
			RequestID:   requestID,
			Response:    payload.Response,
			RespondedBy: responderID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}
