package controllers

import (
	"net/http"
	"strings"

	"github.com/tttsupply/inventory-backend/api/responses"
	"github.com/tttsupply/inventory-backend/api/validators"
	"github.com/tttsupply/inventory-backend/internal/assignments"
	"github.com/tttsupply/inventory-backend/internal/ledger"
	"github.com/tttsupply/inventory-backend/pkg/enums"
	pkgerrors "github.com/tttsupply/inventory-backend/pkg/errors"
	"github.com/tttsupply/inventory-backend/pkg/logger"
)

type recordTransactionRequest struct {
	SKU      string  `json:"sku" validate:"required,max=64"`
	Action   string  `json:"action" validate:"required"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	HubID    *int64  `json:"hub_id,omitempty"`
	Comment  *string `json:"comment,omitempty" validate:"omitempty,max=2000"`
}

// RecordTransaction appends one IN or OUT movement to the ledger. The
// assignment check lives here, not in the ledger: history for a since
// unassigned pair stays valid, only new recording is gated.
func RecordTransaction(svc ledger.Service, assignSvc assignments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || assignSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		userID, err := requireUserID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload recordTransactionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		action, err := enums.ParseTxAction(strings.ToUpper(strings.TrimSpace(payload.Action)))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action"))
			return
		}

		hubID, err := resolveHubID(r.Context(), payload.HubID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sku := strings.TrimSpace(payload.SKU)
		assigned, err := assignSvc.IsAssigned(r.Context(), hubID, sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !assigned {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is not assigned to this hub"))
			return
		}

		txn, err := svc.RecordTransaction(r.Context(), ledger.RecordTransactionInput{
			SKU:      sku,
			Action:   action,
			Quantity: payload.Quantity,
			HubID:    hubID,
			UserID:   userID,
			Comment:  payload.Comment,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, txn)
	}
}

// ListTransactions returns ledger rows, newest first.
func ListTransactions(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		filters, err := parseTransactionFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.QueryTransactions(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// DailyOutTotals returns per-day OUT sums for a hub, optionally one SKU.
func DailyOutTotals(svc ledger.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
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

		sku := strings.TrimSpace(r.URL.Query().Get("sku"))

		totals, err := svc.QueryDailyOutTotals(r.Context(), hubID, sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, totals)
	}
}

func parseTransactionFilters(r *http.Request) (ledger.TransactionFilters, error) {
	var filters ledger.TransactionFilters

	requested, err := validators.ParseQueryInt64(r, "hub_id")
	if err != nil {
		return filters, err
	}
	hubID, err := optionalHubID(r.Context(), requested)
	if err != nil {
		return filters, err
	}
	filters.HubID = hubID

	filters.SKU = strings.TrimSpace(r.URL.Query().Get("sku"))

	if raw := strings.TrimSpace(r.URL.Query().Get("action")); raw != "" {
		action, err := enums.ParseTxAction(strings.ToUpper(raw))
		if err != nil {
			return filters, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid action")
		}
		filters.Action = &action
	}

	from, err := validators.ParseQueryTime(r, "from")
	if err != nil {
		return filters, err
	}
	filters.From = from

	to, err := validators.ParseQueryTime(r, "to")
	if err != nil {
		return filters, err
	}
	filters.To = to

	limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 500)
	if err != nil {
		return filters, err
	}
	filters.Limit = limit

	return filters, nil
}
