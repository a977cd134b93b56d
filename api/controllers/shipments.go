package controllers

import (
	"net/http"
	"strings"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	"github.com/tttsupply/inventory-backend/internal/shipments"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

// RecordShipment files inbound shipment paperwork. It does not move stock;
// the receiving hub still records an IN transaction on arrival.
func RecordShipment(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		var payload shipments.RecordShipmentInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shipment, err := svc.Record(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, shipment)
	}
}

// ListShipments returns shipment records, newest first.
func ListShipments(svc shipments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipment service unavailable"))
			return
		}

		var filters shipments.ListFilters

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

		filters.Supplier = strings.TrimSpace(r.URL.Query().Get("supplier"))

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
