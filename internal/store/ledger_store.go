package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type LedgerStore struct {
	db DB
}

func NewLedgerStore(db DB) *LedgerStore {
	return &LedgerStore{db: db}
}

type LedgerMovementInput struct {
	ID                  string
	Type                string
	Concept             string
	Currency            string
	AmountOriginal      decimal.Decimal
	ExchangeRate        *decimal.Decimal
	AmountARSEquivalent decimal.Decimal
	AmountUSDEquivalent decimal.Decimal
	AccountID           string
	CounterpartyID      *string
	RelatedEntityID     *string
	ReceiptNumber       *string
	ScopeID             *string
	MovementDate        time.Time
}

func (s *LedgerStore) InsertMovement(ctx context.Context, input LedgerMovementInput) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO ledger_movements (id, type, concept, currency, amount_original, exchange_rate, amount_ars_equivalent, amount_usd_equivalent, account_id, counterparty_id, related_entity_id, receipt_number, scope_id, movement_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, input.ID, input.Type, input.Concept, input.Currency, input.AmountOriginal, input.ExchangeRate,
		input.AmountARSEquivalent, input.AmountUSDEquivalent, input.AccountID, input.CounterpartyID,
		input.RelatedEntityID, input.ReceiptNumber, input.ScopeID, input.MovementDate)
	return err
}

// PeriodMovement is a ledger movement joined with its account's chart
// classification, which is what the monthly position aggregation consumes.
type PeriodMovement struct {
	ID                  string          `db:"id"`
	Type                string          `db:"type"`
	Currency            string          `db:"currency"`
	AmountOriginal      decimal.Decimal `db:"amount_original"`
	AmountARSEquivalent decimal.Decimal `db:"amount_ars_equivalent"`
	AmountUSDEquivalent decimal.Decimal `db:"amount_usd_equivalent"`
	Category            string          `db:"category"`
	MovementDate        time.Time       `db:"movement_date"`
}

func (s *LedgerStore) ListByPeriod(ctx context.Context, from, to time.Time, scopeID *string) ([]PeriodMovement, error) {
	query := `
		SELECT m.id, m.type, m.currency, m.amount_original, m.amount_ars_equivalent, m.amount_usd_equivalent,
		       c.category, m.movement_date
		FROM ledger_movements m
		JOIN financial_accounts a ON a.id = m.account_id
		JOIN chart_of_accounts c ON c.id = a.chart_account_id
		WHERE m.movement_date BETWEEN $1 AND $2
	`
	args := []any{from, to}
	if scopeID != nil {
		query += ` AND m.scope_id = $3`
		args = append(args, *scopeID)
	}
	query += ` ORDER BY m.movement_date`
	var rows []PeriodMovement
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}
