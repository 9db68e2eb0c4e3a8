package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"backoffice/internal/db"
	"backoffice/internal/models"
	"backoffice/internal/money"
	"backoffice/internal/store"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingCounterparty  = errors.New("counterparty is required")
	ErrCounterpartyNotFound = errors.New("counterparty not found")
	ErrEmptyBatch           = errors.New("batch has no items")
	ErrMissingPaymentDate   = errors.New("payment date is required")
	ErrInvalidExchangeRate  = errors.New("exchange rate must be positive when currencies differ")
)

type BulkPaymentService struct {
	txRunner       db.TxRunner
	counterparties CounterpartyStore
	debts          DebtStore
	payments       PaymentStore
	writer         LedgerRecorder
	audit          AuditStore
}

type CounterpartyStore interface {
	GetByID(ctx context.Context, counterpartyID string) (models.Counterparty, error)
}

type DebtStore interface {
	GetForUpdate(ctx context.Context, tx store.Getter, debtID string) (models.Debt, error)
	ApplyPayment(ctx context.Context, tx store.Execer, debtID string, paidAmount decimal.Decimal, status string, paidAt *time.Time) error
}

type PaymentStore interface {
	Create(ctx context.Context, input store.PaymentInput) error
}

type LedgerRecorder interface {
	Record(ctx context.Context, event PaymentEvent)
}

type AuditStore interface {
	Log(ctx context.Context, actorID, action, entityType, entityID, data string) error
}

func NewBulkPaymentService(txRunner db.TxRunner, counterparties CounterpartyStore, debts DebtStore, payments PaymentStore, writer LedgerRecorder, audit AuditStore) *BulkPaymentService {
	return &BulkPaymentService{
		txRunner:       txRunner,
		counterparties: counterparties,
		debts:          debts,
		payments:       payments,
		writer:         writer,
		audit:          audit,
	}
}

type BulkPaymentItem struct {
	DebtID          string
	RelatedEntityID string
	Amount          decimal.Decimal
}

type BulkPaymentRequest struct {
	ActorID         string
	CounterpartyID  string
	DebtCurrency    money.Currency
	PaymentCurrency money.Currency
	ExchangeRate    *decimal.Decimal
	ReceiptNumber   *string
	PaymentDate     time.Time
	Notes           *string
	ScopeID         *string
	Items           []BulkPaymentItem
}

type ItemResult struct {
	DebtID          string          `json:"debt_id"`
	RelatedEntityID string          `json:"related_entity_id"`
	Amount          decimal.Decimal `json:"amount"`
	Status          string          `json:"status"`
}

type BatchSummary struct {
	Counterparty       string           `json:"counterparty"`
	TotalDebtAmount    decimal.Decimal  `json:"total_debt_amount"`
	DebtCurrency       string           `json:"debt_currency"`
	TotalPaymentAmount decimal.Decimal  `json:"total_payment_amount"`
	PaymentCurrency    string           `json:"payment_currency"`
	ExchangeRate       *decimal.Decimal `json:"exchange_rate,omitempty"`
	PaymentsCount      int              `json:"payments_count"`
}

type BulkPaymentResult struct {
	Results []ItemResult `json:"results"`
	Errors  []string     `json:"errors,omitempty"`
	Summary BatchSummary `json:"summary"`
}

// ProcessBatch applies a batch of payments against outstanding debts. Batch
// preconditions are fail-fast; items are then processed strictly in input
// order, each with an independent outcome. The debt-balance update is the
// single source of truth: payment records and ledger/cash projections are
// best-effort and never flip a settled item back to failed.
//
// Resubmitting an identical batch is not idempotent. Each submission applies
// again as long as the debts have remaining balance; deduplication is the
// caller's responsibility.
func (s *BulkPaymentService) ProcessBatch(ctx context.Context, req BulkPaymentRequest) (BulkPaymentResult, error) {
	if req.CounterpartyID == "" {
		return BulkPaymentResult{}, ErrMissingCounterparty
	}
	if len(req.Items) == 0 {
		return BulkPaymentResult{}, ErrEmptyBatch
	}
	if req.PaymentDate.IsZero() {
		return BulkPaymentResult{}, ErrMissingPaymentDate
	}
	rate := decimal.Zero
	if req.ExchangeRate != nil {
		rate = money.NormalizeRate(*req.ExchangeRate)
	}
	if req.DebtCurrency != req.PaymentCurrency && rate.LessThanOrEqual(decimal.Zero) {
		return BulkPaymentResult{}, ErrInvalidExchangeRate
	}

	counterparty, err := s.counterparties.GetByID(ctx, req.CounterpartyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return BulkPaymentResult{}, ErrCounterpartyNotFound
		}
		return BulkPaymentResult{}, err
	}

	direction := models.DirectionIncome
	payerKind := models.PayerCustomer
	if counterparty.Kind == models.CounterpartyOperator {
		direction = models.DirectionExpense
		payerKind = models.PayerOperator
	}

	result := BulkPaymentResult{Results: []ItemResult{}, Errors: []string{}}
	totalDebt := decimal.Zero
	for _, item := range req.Items {
		if err := s.processItem(ctx, req, counterparty, direction, payerKind, rate, item); err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		totalDebt = totalDebt.Add(item.Amount)
		result.Results = append(result.Results, ItemResult{
			DebtID:          item.DebtID,
			RelatedEntityID: item.RelatedEntityID,
			Amount:          item.Amount,
			Status:          "success",
		})
	}

	// The batch total is converted once at the batch rate instead of summing
	// per-item conversions, so rounding drift does not compound across items.
	totalPayment := totalDebt
	if req.DebtCurrency != req.PaymentCurrency {
		converted, convErr := money.Convert(totalDebt, req.DebtCurrency, req.PaymentCurrency, rate)
		if convErr == nil {
			totalPayment = converted
		}
	}
	var rateOut *decimal.Decimal
	if req.ExchangeRate != nil {
		rateOut = &rate
	}
	result.Summary = BatchSummary{
		Counterparty:       counterparty.Name,
		TotalDebtAmount:    totalDebt,
		DebtCurrency:       string(req.DebtCurrency),
		TotalPaymentAmount: totalPayment,
		PaymentCurrency:    string(req.PaymentCurrency),
		ExchangeRate:       rateOut,
		PaymentsCount:      len(result.Results),
	}
	s.auditBatch(ctx, req, result)
	return result, nil
}

func (s *BulkPaymentService) processItem(ctx context.Context, req BulkPaymentRequest, counterparty models.Counterparty, direction, payerKind string, rate decimal.Decimal, item BulkPaymentItem) error {
	if item.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("debt %s: amount must be positive", item.DebtID)
	}

	var updated models.Debt
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		debt, err := s.debts.GetForUpdate(ctx, tx, item.DebtID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("debt %s not found", item.DebtID)
			}
			return fmt.Errorf("debt %s: %w", item.DebtID, err)
		}
		if debt.Currency != string(req.DebtCurrency) {
			return fmt.Errorf("debt %s: currency %s does not match batch currency %s", item.DebtID, debt.Currency, req.DebtCurrency)
		}
		newPaid := debt.PaidAmount.Add(item.Amount)
		if newPaid.GreaterThan(debt.TotalAmount) {
			return fmt.Errorf("debt %s: payment of %s exceeds pending balance of %s", item.DebtID, item.Amount, debt.TotalAmount.Sub(debt.PaidAmount))
		}
		status := debt.Status
		var paidAt *time.Time
		if newPaid.GreaterThanOrEqual(debt.TotalAmount) {
			status = models.DebtStatusPaid
			now := time.Now().UTC()
			paidAt = &now
		}
		if err := s.debts.ApplyPayment(ctx, tx, debt.ID, newPaid, status, paidAt); err != nil {
			return fmt.Errorf("debt %s: %w", item.DebtID, err)
		}
		updated = debt
		updated.PaidAmount = newPaid
		updated.Status = status
		updated.PaidAt = paidAt
		return nil
	})
	if err != nil {
		return err
	}

	// From here on the authoritative state change is committed. Everything
	// below is bookkeeping projection: logged when it fails, never reverted.
	amountUSD := money.USDEquivalent(item.Amount, req.DebtCurrency, rate)
	paymentID := uuid.NewString()
	if err := s.payments.Create(ctx, store.PaymentInput{
		ID:            paymentID,
		DebtID:        item.DebtID,
		Direction:     direction,
		PayerKind:     payerKind,
		Method:        "bulk",
		Amount:        item.Amount,
		Currency:      string(req.DebtCurrency),
		AmountUSD:     amountUSD,
		ExchangeRate:  req.ExchangeRate,
		DatePaid:      req.PaymentDate,
		Status:        "PAID",
		Reference:     req.Notes,
		ReceiptNumber: req.ReceiptNumber,
	}); err != nil {
		log.Printf("bulk payment: payment record for debt %s failed: %v", item.DebtID, err)
		s.auditDegrade(ctx, req.ActorID, "payment_record_failed", item.DebtID, err)
	}

	s.writer.Record(ctx, PaymentEvent{
		PaymentID:        paymentID,
		DebtID:           item.DebtID,
		RelatedEntityID:  item.RelatedEntityID,
		CounterpartyID:   counterparty.ID,
		CounterpartyName: counterparty.Name,
		Direction:        direction,
		Amount:           item.Amount,
		DebtCurrency:     req.DebtCurrency,
		PaymentCurrency:  req.PaymentCurrency,
		ExchangeRate:     req.ExchangeRate,
		ReceiptNumber:    req.ReceiptNumber,
		ScopeID:          req.ScopeID,
		Date:             req.PaymentDate,
	})
	return nil
}

func (s *BulkPaymentService) auditBatch(ctx context.Context, req BulkPaymentRequest, result BulkPaymentResult) {
	data, _ := json.Marshal(map[string]any{
		"counterparty_id": req.CounterpartyID,
		"payments_count":  result.Summary.PaymentsCount,
		"errors":          len(result.Errors),
		"exchange_rate":   req.ExchangeRate,
	})
	if err := s.audit.Log(ctx, req.ActorID, "bulk_payment", "counterparty", req.CounterpartyID, string(data)); err != nil {
		log.Printf("bulk payment: audit log failed: %v", err)
	}
}

func (s *BulkPaymentService) auditDegrade(ctx context.Context, actorID, action, entityID string, cause error) {
	data, _ := json.Marshal(map[string]string{"error": cause.Error()})
	if err := s.audit.Log(ctx, actorID, action, "debt", entityID, string(data)); err != nil {
		log.Printf("bulk payment: audit log failed: %v", err)
	}
}
