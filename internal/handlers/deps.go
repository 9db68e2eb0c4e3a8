package handlers

import (
	"context"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/reports"
	"backoffice/internal/services"
)

type BulkPaymentService interface {
	ProcessBatch(ctx context.Context, req services.BulkPaymentRequest) (services.BulkPaymentResult, error)
}

type PositionService interface {
	Monthly(ctx context.Context, year int, month time.Month, scopeID *string) (reports.MonthlyPosition, error)
	Distribution(ctx context.Context, year int, month time.Month, scopeID *string) (reports.Distribution, error)
}

type DebtStore interface {
	ListByCounterparty(ctx context.Context, counterpartyID, status string) ([]models.Debt, error)
}

type AccountStore interface {
	ListAll(ctx context.Context) ([]models.FinancialAccount, error)
}

type AuditStore interface {
	List(ctx context.Context, limit, offset int) ([]map[string]any, error)
}
