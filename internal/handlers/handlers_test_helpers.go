package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"backoffice/internal/auth"
	"backoffice/internal/config"
	"backoffice/internal/models"
	"backoffice/internal/reports"
	"backoffice/internal/services"
	"backoffice/internal/websocket"
)

const testSecret = "test-secret"

type stubBulkPaymentService struct {
	processFn func(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error)
}

func (s stubBulkPaymentService) ProcessBatch(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error) {
	if s.processFn == nil {
		return services.BulkPaymentResult{Results: []services.ItemResult{}, Errors: []string{}}, nil
	}
	return s.processFn(ctx, req)
}

type stubPositionService struct {
	monthlyFn      func(ctx context.Context, year int, month time.Month, scopeID *string) (reports.MonthlyPosition, error)
	distributionFn func(ctx context.Context, year int, month time.Month, scopeID *string) (reports.Distribution, error)
}

func (s stubPositionService) Monthly(ctx context.Context, year int, month time.Month, scopeID *string) (reports.MonthlyPosition, error) {
	if s.monthlyFn == nil {
		return reports.MonthlyPosition{Year: year, Month: int(month)}, nil
	}
	return s.monthlyFn(ctx, year, month, scopeID)
}

func (s stubPositionService) Distribution(ctx context.Context, year int, month time.Month, scopeID *string) (reports.Distribution, error) {
	if s.distributionFn == nil {
		return reports.Distribution{Year: year, Month: int(month)}, nil
	}
	return s.distributionFn(ctx, year, month, scopeID)
}

type stubDebtStore struct {
	listFn func(ctx context.Context, counterpartyID, status string) ([]models.Debt, error)
}

func (s stubDebtStore) ListByCounterparty(ctx context.Context, counterpartyID, status string) ([]models.Debt, error) {
	if s.listFn == nil {
		return []models.Debt{}, nil
	}
	return s.listFn(ctx, counterpartyID, status)
}

type stubAccountStore struct {
	listFn func(ctx context.Context) ([]models.FinancialAccount, error)
}

func (s stubAccountStore) ListAll(ctx context.Context) ([]models.FinancialAccount, error) {
	if s.listFn == nil {
		return []models.FinancialAccount{}, nil
	}
	return s.listFn(ctx)
}

type stubAuditStore struct{}

func (stubAuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	return []map[string]any{}, nil
}

type handlerStubs struct {
	payments stubBulkPaymentService
	reports  stubPositionService
	debts    stubDebtStore
	accounts stubAccountStore
}

func newTestServer(t *testing.T, stubs handlerStubs) *httptest.Server {
	t.Helper()
	cfg := config.Config{JWTSecret: testSecret, AllowedOrigins: "*"}
	handler := New(cfg, stubs.payments, stubs.reports, stubs.debts, stubs.accounts, stubAuditStore{}, websocket.NewHub())
	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)
	return server
}

func authedRequest(t *testing.T, method, url string, body *string) *http.Request {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, url, strings.NewReader(*body))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	token, err := auth.IssueToken(testSecret, "clerk-1", time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}
