package store

import (
	"context"
	"time"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

type DebtStore struct {
	db DB
}

func NewDebtStore(db DB) *DebtStore {
	return &DebtStore{db: db}
}

func (s *DebtStore) GetByID(ctx context.Context, debtID string) (models.Debt, error) {
	var row models.Debt
	err := s.db.GetContext(ctx, &row, `
		SELECT id, counterparty_id, total_amount, paid_amount, currency, status, due_date, paid_at, created_at
		FROM debts
		WHERE id = $1
	`, debtID)
	if err != nil {
		return models.Debt{}, err
	}
	return row, nil
}

func (s *DebtStore) GetForUpdate(ctx context.Context, tx Getter, debtID string) (models.Debt, error) {
	var row models.Debt
	err := tx.GetContext(ctx, &row, `
		SELECT id, counterparty_id, total_amount, paid_amount, currency, status, due_date, paid_at, created_at
		FROM debts
		WHERE id = $1
		FOR UPDATE
	`, debtID)
	if err != nil {
		return models.Debt{}, err
	}
	return row, nil
}

// ApplyPayment persists the new paid amount and status for a debt. paidAt is
// only written when the debt flips to PAID.
func (s *DebtStore) ApplyPayment(ctx context.Context, tx Execer, debtID string, paidAmount decimal.Decimal, status string, paidAt *time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE debts
		SET paid_amount = $1, status = $2, paid_at = COALESCE($3, paid_at), updated_at = NOW()
		WHERE id = $4
	`, paidAmount, status, paidAt, debtID)
	return err
}

func (s *DebtStore) ListByCounterparty(ctx context.Context, counterpartyID, status string) ([]models.Debt, error) {
	query := `
		SELECT id, counterparty_id, total_amount, paid_amount, currency, status, due_date, paid_at, created_at
		FROM debts
		WHERE counterparty_id = $1
	`
	args := []any{counterpartyID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY due_date`
	var rows []models.Debt
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
