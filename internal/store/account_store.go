package store

import (
	"context"

	"backoffice/internal/models"

	"github.com/shopspring/decimal"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

// GetActiveByChartAccount resolves the financial account bound to a chart
// entry. sql.ErrNoRows means no account is configured for that entry.
func (s *AccountStore) GetActiveByChartAccount(ctx context.Context, chartAccountID string) (models.FinancialAccount, error) {
	var row models.FinancialAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, currency, chart_account_id, balance, scope_id, is_active, created_at
		FROM financial_accounts
		WHERE chart_account_id = $1 AND is_active = TRUE
	`, chartAccountID)
	if err != nil {
		return models.FinancialAccount{}, err
	}
	return row, nil
}

// ClassifiedBalance is a financial account balance annotated with its chart
// classification, which the balance sheet groups on.
type ClassifiedBalance struct {
	AccountID string          `db:"account_id"`
	Name      string          `db:"name"`
	Currency  string          `db:"currency"`
	Balance   decimal.Decimal `db:"balance"`
	Category  string          `db:"category"`
	IsCurrent bool            `db:"is_current"`
}

func (s *AccountStore) ListClassifiedBalances(ctx context.Context, scopeID *string) ([]ClassifiedBalance, error) {
	query := `
		SELECT a.id AS account_id, a.name, a.currency, a.balance, c.category, c.is_current
		FROM financial_accounts a
		JOIN chart_of_accounts c ON c.id = a.chart_account_id
		WHERE a.is_active = TRUE
	`
	args := []any{}
	if scopeID != nil {
		query += ` AND a.scope_id = $1`
		args = append(args, *scopeID)
	}
	query += ` ORDER BY c.category, a.currency`
	var rows []ClassifiedBalance
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) ListAll(ctx context.Context) ([]models.FinancialAccount, error) {
	var rows []models.FinancialAccount
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, currency, chart_account_id, balance, scope_id, is_active, created_at
		FROM financial_accounts
		ORDER BY currency, name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
