package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"backoffice/internal/reports"

	"github.com/shopspring/decimal"
)

func getAuthed(t *testing.T, url string) *http.Response {
	t.Helper()
	req := authedRequest(t, http.MethodGet, url, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestMonthlyPositionValidatesPeriod(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	for _, query := range []string{"", "?year=2026", "?year=2026&month=13", "?year=1800&month=5"} {
		resp := getAuthed(t, server.URL+"/reports/position"+query)
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("query %q: expected 400, got %d", query, resp.StatusCode)
		}
	}
}

func TestMonthlyPositionReturnsAggregates(t *testing.T) {
	stubs := handlerStubs{reports: stubPositionService{
		monthlyFn: func(ctx context.Context, year int, month time.Month, scopeID *string) (reports.MonthlyPosition, error) {
			if scopeID == nil || *scopeID != "agency-1" {
				t.Fatalf("expected scope agency-1, got %v", scopeID)
			}
			return reports.MonthlyPosition{
				Year:       year,
				Month:      int(month),
				Equity:     decimal.NewFromInt(200000),
				Balanceado: true,
			}, nil
		},
	}}
	server := newTestServer(t, stubs)
	resp := getAuthed(t, server.URL+"/reports/position?year=2026&month=3&scope_id=agency-1")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Balanceado bool   `json:"balanceado"`
		Equity     string `json:"patrimonio_neto"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Balanceado || payload.Equity != "200000" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPartnerDistributionEndpoint(t *testing.T) {
	stubs := handlerStubs{reports: stubPositionService{
		distributionFn: func(ctx context.Context, year int, month time.Month, scopeID *string) (reports.Distribution, error) {
			return reports.Distribution{
				Year:    year,
				Month:   int(month),
				Warning: "partner percentages sum to 80%, leaving 20% unassigned",
			}, nil
		},
	}}
	server := newTestServer(t, stubs)
	resp := getAuthed(t, server.URL+"/reports/distribution?year=2026&month=3")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		Warning string `json:"warning"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload.Warning == "" {
		t.Fatal("expected percentage warning to pass through")
	}
}

func TestListDebtsRequiresCounterparty(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	resp := getAuthed(t, server.URL+"/debts")
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHealthIsPublic(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
