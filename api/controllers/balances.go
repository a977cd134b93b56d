package controllers

import (
	"net/http"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	"github.com/tttsupply/inventory-backend/internal/balances"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

type hubBalancesResponse struct {
	HubID         int64                 `json:"hub_id"`
	Balances      []balances.SKUBalance `json:"balances"`
	TodayOutTotal int                   `json:"today_out_total"`
}

// HubBalances projects current stock for one hub straight from the ledger,
// plus the day's total outgoing quantity.
func HubBalances(svc balances.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "balance service unavailable"))
			return
		}

		requested, err := validators.ParseQueryInt64(r, "hub_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		hubID, err := resolveHubID(r.Context(), requested)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.GetHubBalances(r.Context(), hubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		outTotal, err := svc.GetTodayOutTotal(r.Context(), hubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, hubBalancesResponse{
			HubID:         hubID,
			Balances:      rows,
			TodayOutTotal: outTotal,
		})
	}
}

// GlobalBalances projects stock for every hub/SKU pair in one pass.
func GlobalBalances(svc balances.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "balance service unavailable"))
			return
		}

		rows, err := svc.GetGlobalBalances(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}
