package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/tttsupply/inventory-backend/api/middleware"
	"github.com/tttsupply/inventory-backend/internal/balances"
)

type stubBalanceService struct {
	hubRows    []balances.SKUBalance
	globalRows []balances.HubSKUBalance
	outTotal   int
	hubID      int64
	err        error
}

func (s *stubBalanceService) GetHubBalances(ctx context.Context, hubID int64) ([]balances.SKUBalance, error) {
	s.hubID = hubID
	return s.hubRows, s.err
}

func (s *stubBalanceService) GetGlobalBalances(ctx context.Context) ([]balances.HubSKUBalance, error) {
	return s.globalRows, s.err
}

func (s *stubBalanceService) GetTodayOutTotal(ctx context.Context, hubID int64) (int, error) {
	return s.outTotal, s.err
}

func (s *stubBalanceService) IsLowStock(net int) bool {
	return false
}

func TestHubBalancesUsesContextHub(t *testing.T) {
	svc := &stubBalanceService{
		hubRows:  []balances.SKUBalance{{SKU: "SKU-A", Name: "Box Small", Net: 35}},
		outTotal: 15,
	}
	handler := HubBalances(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances", nil)
	ctx := middleware.WithUserID(req.Context(), uuid.New())
	ctx = middleware.WithHubID(ctx, 2)
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.hubID != 2 {
		t.Fatalf("expected hub 2, got %d", svc.hubID)
	}

	var envelope struct {
		Data struct {
			HubID         int64                 `json:"hub_id"`
			Balances      []balances.SKUBalance `json:"balances"`
			TodayOutTotal int                   `json:"today_out_total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.HubID != 2 || envelope.Data.TodayOutTotal != 15 {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
	if len(envelope.Data.Balances) != 1 || envelope.Data.Balances[0].Net != 35 {
		t.Fatalf("unexpected balances %+v", envelope.Data.Balances)
	}
}

func TestHubBalancesHQWithoutHubRejected(t *testing.T) {
	handler := HubBalances(&stubBalanceService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGlobalBalances(t *testing.T) {
	svc := &stubBalanceService{globalRows: []balances.HubSKUBalance{
		{HubID: 1, HubName: "East Hub", SKU: "SKU-B", Name: "Box Large", Net: -3, LowStock: true},
	}}
	handler := GlobalBalances(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/balances/global", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []balances.HubSKUBalance `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || !envelope.Data[0].LowStock {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}
