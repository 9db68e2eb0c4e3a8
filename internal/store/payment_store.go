package store

import (
	"context"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

type PaymentStore struct {
	db DB
}

func NewPaymentStore(db DB) *PaymentStore {
	return &PaymentStore{db: db}
}

type PaymentInput struct {
	ID            string
	DebtID        string
	Direction     string
	PayerKind     string
	Method        string
	Amount        decimal.Decimal
	Currency      string
	AmountUSD     decimal.Decimal
	ExchangeRate  *decimal.Decimal
	DatePaid      time.Time
	Status        string
	Reference     *string
	ReceiptNumber *string
}

func (s *PaymentStore) Create(ctx context.Context, input PaymentInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO payments (id, debt_id, direction, payer_kind, method, amount, currency, amount_usd, exchange_rate, date_paid, status, reference, receipt_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, input.ID, input.DebtID, input.Direction, input.PayerKind, input.Method, input.Amount, input.Currency,
		input.AmountUSD, input.ExchangeRate, input.DatePaid, input.Status, input.Reference, input.ReceiptNumber)
	return err
}

func (s *PaymentStore) ListByDebt(ctx context.Context, debtID string) ([]models.PaymentRecord, error) {
	var rows []models.PaymentRecord
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, debt_id, direction, payer_kind, method, amount, currency, amount_usd, exchange_rate, date_paid, status, reference, receipt_number, created_at
		FROM payments
		WHERE debt_id = $1
		ORDER BY created_at DESC
	`, debtID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
