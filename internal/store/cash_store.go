package store

import (
	"context"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

type CashStore struct {
	db DB
}

func NewCashStore(db DB) *CashStore {
	return &CashStore{db: db}
}

// GetDefaultBox returns the active default cash box for a currency. Callers
// must treat sql.ErrNoRows as "no box configured", not as a hard failure.
func (s *CashStore) GetDefaultBox(ctx context.Context, currency string) (models.CashBox, error) {
	var row models.CashBox
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, currency, is_default, is_active, created_at
		FROM cash_boxes
		WHERE currency = $1 AND is_default = TRUE AND is_active = TRUE
	`, currency)
	if err != nil {
		return models.CashBox{}, err
	}
	return row, nil
}

type CashMovementInput struct {
	ID           string
	CashBoxID    *string
	Type         string
	Category     string
	Amount       decimal.Decimal
	Currency     string
	MovementDate time.Time
	PaymentID    *string
}

func (s *CashStore) InsertMovement(ctx context.Context, input CashMovementInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cash_movements (id, cash_box_id, type, category, amount, currency, movement_date, payment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, input.ID, input.CashBoxID, input.Type, input.Category, input.Amount, input.Currency, input.MovementDate, input.PaymentID)
	return err
}

func (s *CashStore) SumByBox(ctx context.Context, cashBoxID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := s.db.GetContext(ctx, &sum, `
		SELECT COALESCE(SUM(CASE WHEN type = 'EXPENSE' THEN -amount ELSE amount END), 0)
		FROM cash_movements
		WHERE cash_box_id = $1
	`, cashBoxID)
	return sum, err
}
