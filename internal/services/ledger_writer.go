package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/money"
	"backoffice/internal/store"
	"backoffice/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Chart-of-accounts codes the writer posts against. Missing configuration
// for either code downgrades to skipping the general-ledger movement.
const (
	chartCodeServiceIncome = "4.1.1"
	chartCodeOperatorCost  = "5.1.1"
)

type LedgerWriter struct {
	charts   ChartStore
	accounts FinancialAccountStore
	ledger   LedgerMovementStore
	cash     CashMovementStore
	audit    AuditStore
	hub      CashHub
}

type ChartStore interface {
	GetByCode(ctx context.Context, code string) (models.ChartAccount, error)
}

type FinancialAccountStore interface {
	GetActiveByChartAccount(ctx context.Context, chartAccountID string) (models.FinancialAccount, error)
}

type LedgerMovementStore interface {
	InsertMovement(ctx context.Context, input store.LedgerMovementInput) error
}

type CashMovementStore interface {
	GetDefaultBox(ctx context.Context, currency string) (models.CashBox, error)
	InsertMovement(ctx context.Context, input store.CashMovementInput) error
}

type CashHub interface {
	BroadcastCash(currency string, update websocket.CashUpdate)
}

func NewLedgerWriter(charts ChartStore, accounts FinancialAccountStore, ledger LedgerMovementStore, cash CashMovementStore, audit AuditStore, hub CashHub) *LedgerWriter {
	return &LedgerWriter{
		charts:   charts,
		accounts: accounts,
		ledger:   ledger,
		cash:     cash,
		audit:    audit,
		hub:      hub,
	}
}

type PaymentEvent struct {
	PaymentID        string
	DebtID           string
	RelatedEntityID  string
	CounterpartyID   string
	CounterpartyName string
	Direction        string
	Amount           decimal.Decimal
	DebtCurrency     money.Currency
	PaymentCurrency  money.Currency
	ExchangeRate     *decimal.Decimal
	ReceiptNumber    *string
	ScopeID          *string
	Date             time.Time
}

// Record projects a settled payment into the general ledger and the cash
// books. Every step is best-effort: a missing chart entry or financial
// account skips the ledger movement, a missing cash box leaves the cash
// movement unassigned, and write failures are logged and audited. Nothing
// here can fail the payment that triggered it.
func (w *LedgerWriter) Record(ctx context.Context, event PaymentEvent) {
	rate := decimal.Zero
	if event.ExchangeRate != nil {
		rate = *event.ExchangeRate
	}

	code := chartCodeServiceIncome
	movementType := models.MovementCustomerPayment
	cashType := "INCOME"
	if event.Direction == models.DirectionExpense {
		code = chartCodeOperatorCost
		movementType = models.MovementOperatorPayment
		cashType = "EXPENSE"
	}

	w.writeLedgerMovement(ctx, event, code, movementType, rate)
	w.writeCashMovement(ctx, event, cashType, rate)
}

func (w *LedgerWriter) writeLedgerMovement(ctx context.Context, event PaymentEvent, code, movementType string, rate decimal.Decimal) {
	chart, err := w.charts.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("ledger writer: chart account %s not configured, skipping movement for payment %s", code, event.PaymentID)
			return
		}
		w.degrade(ctx, event, "ledger_movement_failed", err)
		return
	}
	account, err := w.accounts.GetActiveByChartAccount(ctx, chart.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("ledger writer: no active account for chart %s, skipping movement for payment %s", chart.Code, event.PaymentID)
			return
		}
		w.degrade(ctx, event, "ledger_movement_failed", err)
		return
	}

	amount, err := money.Convert(event.Amount, event.DebtCurrency, event.PaymentCurrency, rate)
	if err != nil {
		w.degrade(ctx, event, "ledger_movement_failed", err)
		return
	}
	input := store.LedgerMovementInput{
		ID:                  uuid.NewString(),
		Type:                movementType,
		Concept:             event.CounterpartyName + " - debt " + event.DebtID,
		Currency:            string(event.PaymentCurrency),
		AmountOriginal:      amount,
		ExchangeRate:        event.ExchangeRate,
		AmountARSEquivalent: money.ARSEquivalent(amount, event.PaymentCurrency, rate),
		AmountUSDEquivalent: money.USDEquivalent(amount, event.PaymentCurrency, rate),
		AccountID:           account.ID,
		CounterpartyID:      &event.CounterpartyID,
		RelatedEntityID:     optional(event.RelatedEntityID),
		ReceiptNumber:       event.ReceiptNumber,
		ScopeID:             event.ScopeID,
		MovementDate:        event.Date,
	}
	if err := w.ledger.InsertMovement(ctx, input); err != nil {
		w.degrade(ctx, event, "ledger_movement_failed", err)
	}
}

func (w *LedgerWriter) writeCashMovement(ctx context.Context, event PaymentEvent, cashType string, rate decimal.Decimal) {
	// The cash amount is converted independently from the ledger movement
	// above: same rate, separate computation. The two reconcile at the
	// aggregate level, not per item.
	amount, err := money.Convert(event.Amount, event.DebtCurrency, event.PaymentCurrency, rate)
	if err != nil {
		w.degrade(ctx, event, "cash_movement_failed", err)
		return
	}

	var boxID *string
	box, err := w.cash.GetDefaultBox(ctx, string(event.PaymentCurrency))
	switch {
	case err == nil:
		boxID = &box.ID
	case errors.Is(err, sql.ErrNoRows):
		// No box configured: the movement is still recorded, unassigned.
		log.Printf("ledger writer: no default cash box for %s, recording unassigned movement for payment %s", event.PaymentCurrency, event.PaymentID)
	default:
		log.Printf("ledger writer: cash box lookup failed for payment %s: %v", event.PaymentID, err)
	}

	input := store.CashMovementInput{
		ID:           uuid.NewString(),
		CashBoxID:    boxID,
		Type:         cashType,
		Category:     event.Direction,
		Amount:       amount,
		Currency:     string(event.PaymentCurrency),
		MovementDate: event.Date,
		PaymentID:    &event.PaymentID,
	}
	if err := w.cash.InsertMovement(ctx, input); err != nil {
		w.degrade(ctx, event, "cash_movement_failed", err)
		return
	}
	w.hub.BroadcastCash(string(event.PaymentCurrency), websocket.CashUpdate{
		CashBoxID: boxID,
		Type:      cashType,
		Amount:    amount.StringFixedBank(2),
		Currency:  string(event.PaymentCurrency),
	})
}

func (w *LedgerWriter) degrade(ctx context.Context, event PaymentEvent, action string, cause error) {
	log.Printf("ledger writer: %s for payment %s: %v", action, event.PaymentID, cause)
	data, _ := json.Marshal(map[string]string{"error": cause.Error(), "debt_id": event.DebtID})
	if err := w.audit.Log(ctx, event.CounterpartyID, action, "payment", event.PaymentID, string(data)); err != nil {
		log.Printf("ledger writer: audit log failed: %v", err)
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
