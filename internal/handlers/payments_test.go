package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"backoffice/internal/services"

	"github.com/shopspring/decimal"
)

func postBulkPayment(t *testing.T, server string, body string) *http.Response {
	t.Helper()
	req := authedRequest(t, http.MethodPost, server+"/payments/bulk", &body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestBulkPaymentRequiresAuth(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	resp, err := http.Post(server.URL+"/payments/bulk", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestBulkPaymentRejectsInvalidCurrency(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	resp := postBulkPayment(t, server.URL, `{
		"counterparty_id": "cp-1",
		"debt_currency": "EUR",
		"payment_currency": "USD",
		"payment_date": "2026-03-10",
		"items": [{"debt_id": "d-1", "amount": 100}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBulkPaymentRejectsMissingDate(t *testing.T) {
	server := newTestServer(t, handlerStubs{})
	resp := postBulkPayment(t, server.URL, `{
		"counterparty_id": "cp-1",
		"debt_currency": "USD",
		"payment_currency": "USD",
		"items": [{"debt_id": "d-1", "amount": 100}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBulkPaymentCounterpartyNotFoundIs404(t *testing.T) {
	stubs := handlerStubs{payments: stubBulkPaymentService{
		processFn: func(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error) {
			return services.BulkPaymentResult{}, services.ErrCounterpartyNotFound
		},
	}}
	server := newTestServer(t, stubs)
	resp := postBulkPayment(t, server.URL, `{
		"counterparty_id": "ghost",
		"debt_currency": "USD",
		"payment_currency": "USD",
		"payment_date": "2026-03-10",
		"items": [{"debt_id": "d-1", "amount": 100}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestBulkPaymentPartialFailureStays2xx(t *testing.T) {
	stubs := handlerStubs{payments: stubBulkPaymentService{
		processFn: func(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error) {
			return services.BulkPaymentResult{
				Results: []services.ItemResult{{DebtID: "d-1", Amount: decimal.NewFromInt(100), Status: "success"}},
				Errors:  []string{"debt d-2 not found"},
				Summary: services.BatchSummary{Counterparty: "Acme", PaymentsCount: 1},
			}, nil
		},
	}}
	server := newTestServer(t, stubs)
	resp := postBulkPayment(t, server.URL, `{
		"counterparty_id": "cp-1",
		"debt_currency": "USD",
		"payment_currency": "USD",
		"payment_date": "2026-03-10",
		"items": [{"debt_id": "d-1", "amount": 100}, {"debt_id": "d-2", "amount": 50}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("per-item failures must not change the status, got %d", resp.StatusCode)
	}
	var payload struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
		Summary struct {
			PaymentsCount int `json:"payments_count"`
		} `json:"summary"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !payload.Success || len(payload.Errors) != 1 || payload.Summary.PaymentsCount != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBulkPaymentPassesParsedRequest(t *testing.T) {
	var captured services.BulkPaymentRequest
	stubs := handlerStubs{payments: stubBulkPaymentService{
		processFn: func(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error) {
			captured = req
			return services.BulkPaymentResult{Results: []services.ItemResult{}, Errors: []string{}}, nil
		},
	}}
	server := newTestServer(t, stubs)
	resp := postBulkPayment(t, server.URL, `{
		"counterparty_id": "cp-1",
		"debt_currency": "ARS",
		"payment_currency": "USD",
		"exchange_rate": 1000,
		"payment_date": "2026-03-10",
		"items": [{"debt_id": "d-1", "related_entity_id": "s-1", "amount": 100000}]
	}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if captured.ActorID != "clerk-1" {
		t.Fatalf("expected actor from token, got %q", captured.ActorID)
	}
	if captured.ExchangeRate == nil || !captured.ExchangeRate.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("unexpected rate: %v", captured.ExchangeRate)
	}
	if len(captured.Items) != 1 || captured.Items[0].RelatedEntityID != "s-1" {
		t.Fatalf("unexpected items: %+v", captured.Items)
	}
}
