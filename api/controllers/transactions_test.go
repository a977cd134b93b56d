package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/api/middleware"
	"github.com/tttsupply/inventory-backend/internal/assignments"
	"github.com/tttsupply/inventory-backend/internal/ledger"
	"github.com/tttsupply/inventory-backend/pkg/db/models"
	"github.com/tttsupply/inventory-backend/pkg/enums"
)

type stubLedgerService struct {
	recorded  *ledger.RecordTransactionInput
	rows      []models.InventoryTransaction
	totals    []ledger.DailyOutTotal
	filters   *ledger.TransactionFilters
	totalsHub int64
	err       error
}

func (s *stubLedgerService) RecordTransaction(ctx context.Context, input ledger.RecordTransactionInput) (*models.InventoryTransaction, error) {
	s.recorded = &input
	if s.err != nil {
		return nil, s.err
	}
	return &models.InventoryTransaction{
		ID:       uuid.New(),
		SKU:      input.SKU,
		Action:   input.Action,
		Quantity: input.Quantity,
		HubID:    input.HubID,
		UserID:   input.UserID,
	}, nil
}

func (s *stubLedgerService) QueryTransactions(ctx context.Context, filters ledger.TransactionFilters) ([]models.InventoryTransaction, error) {
	s.filters = &filters
	return s.rows, s.err
}

func (s *stubLedgerService) QueryDailyOutTotals(ctx context.Context, hubID int64, sku string) ([]ledger.DailyOutTotal, error) {
	s.totalsHub = hubID
	return s.totals, s.err
}

type stubAssignmentService struct {
	assigned    bool
	checkedHub  int64
	checkedSKU  string
	assignedErr error
}

func (s *stubAssignmentService) Assign(ctx context.Context, input assignments.AssignInput) error {
	return nil
}

func (s *stubAssignmentService) Unassign(ctx context.Context, hubID int64, sku string) error {
	return nil
}

func (s *stubAssignmentService) ListAssigned(ctx context.Context, hubID int64) ([]assignments.AssignedSKU, error) {
	return nil, nil
}

func (s *stubAssignmentService) IsAssigned(ctx context.Context, hubID int64, sku string) (bool, error) {
	s.checkedHub = hubID
	s.checkedSKU = sku
	return s.assigned, s.assignedErr
}

func TestRecordTransactionHubScopedCaller(t *testing.T) {
	svc := &stubLedgerService{}
	assignSvc := &stubAssignmentService{assigned: true}
	handler := RecordTransaction(svc, assignSvc, nil)

	userID := uuid.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{"sku":"SKU-A","action":"OUT","quantity":3}`)))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithUserID(req.Context(), userID)
	ctx = middleware.WithHubID(ctx, 4)
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.recorded == nil {
		t.Fatal("expected service call")
	}
	if svc.recorded.HubID != 4 {
		t.Fatalf("expected hub from context, got %d", svc.recorded.HubID)
	}
	if svc.recorded.UserID != userID {
		t.Fatalf("expected user from context, got %s", svc.recorded.UserID)
	}
	if svc.recorded.Action != enums.TxActionOut {
		t.Fatalf("unexpected action %s", svc.recorded.Action)
	}
	if assignSvc.checkedHub != 4 || assignSvc.checkedSKU != "SKU-A" {
		t.Fatalf("assignment checked for wrong pair: hub %d sku %q", assignSvc.checkedHub, assignSvc.checkedSKU)
	}
}

func TestRecordTransactionRejectsUnassignedPair(t *testing.T) {
	svc := &stubLedgerService{}
	handler := RecordTransaction(svc, &stubAssignmentService{assigned: false}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{"sku":"SKU-Z","action":"IN","quantity":5,"hub_id":2}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.recorded != nil {
		t.Fatal("ledger should not be called for an unassigned pair")
	}
}

func TestRecordTransactionHubMismatchForbidden(t *testing.T) {
	svc := &stubLedgerService{}
	handler := RecordTransaction(svc, &stubAssignmentService{assigned: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{"sku":"SKU-A","action":"IN","quantity":1,"hub_id":9}`)))
	req.Header.Set("Content-Type", "application/json")
	ctx := middleware.WithUserID(req.Context(), uuid.New())
	ctx = middleware.WithHubID(ctx, 4)
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if svc.recorded != nil {
		t.Fatal("service should not be called")
	}
}

func TestRecordTransactionHQMustNameHub(t *testing.T) {
	handler := RecordTransaction(&stubLedgerService{}, &stubAssignmentService{assigned: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{"sku":"SKU-A","action":"IN","quantity":1}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRecordTransactionInvalidAction(t *testing.T) {
	handler := RecordTransaction(&stubLedgerService{}, &stubAssignmentService{assigned: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewReader([]byte(`{"sku":"SKU-A","action":"MOVE","quantity":1,"hub_id":2}`)))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListTransactionsPinsHubScope(t *testing.T) {
	svc := &stubLedgerService{rows: []models.InventoryTransaction{}}
	handler := ListTransactions(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions?sku=SKU-A&action=out&limit=25", nil)
	ctx := middleware.WithUserID(req.Context(), uuid.New())
	ctx = middleware.WithHubID(ctx, 7)
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.filters == nil {
		t.Fatal("expected service call")
	}
	if svc.filters.HubID == nil || *svc.filters.HubID != 7 {
		t.Fatalf("expected hub pinned to 7, got %+v", svc.filters.HubID)
	}
	if svc.filters.SKU != "SKU-A" || svc.filters.Limit != 25 {
		t.Fatalf("unexpected filters %+v", svc.filters)
	}
	if svc.filters.Action == nil || *svc.filters.Action != enums.TxActionOut {
		t.Fatalf("expected OUT action filter, got %+v", svc.filters.Action)
	}
}

func TestDailyOutTotalsUsesQueryHubForHQ(t *testing.T) {
	svc := &stubLedgerService{totals: []ledger.DailyOutTotal{{Day: "2026-08-10", SKU: "SKU-A", Total: 12}}}
	handler := DailyOutTotals(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions/daily-out?hub_id=3", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.totalsHub != 3 {
		t.Fatalf("expected hub 3, got %d", svc.totalsHub)
	}

	var envelope struct {
		Data []ledger.DailyOutTotal `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Total != 12 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
