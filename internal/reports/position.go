package reports

import (
	"context"
	"time"

	"backoffice/internal/models"
	"backoffice/internal/store"

	"github.com/shopspring/decimal"
)

// balanceTolerance absorbs the rounding that repeated rate division and
// multiplication introduces: one unit of currency.
var balanceTolerance = decimal.NewFromInt(1)

type PositionService struct {
	ledger   LedgerStore
	accounts AccountStore
	partners PartnerStore
}

type LedgerStore interface {
	ListByPeriod(ctx context.Context, from, to time.Time, scopeID *string) ([]store.PeriodMovement, error)
}

type AccountStore interface {
	ListClassifiedBalances(ctx context.Context, scopeID *string) ([]store.ClassifiedBalance, error)
}

type PartnerStore interface {
	List(ctx context.Context) ([]models.Partner, error)
}

func NewPositionService(ledger LedgerStore, accounts AccountStore, partners PartnerStore) *PositionService {
	return &PositionService{ledger: ledger, accounts: accounts, partners: partners}
}

// Pair is an amount split by currency, the shape every balance-sheet and
// income-statement line takes.
type Pair struct {
	ARS decimal.Decimal `json:"ars"`
	USD decimal.Decimal `json:"usd"`
}

func (p Pair) add(currency string, amount decimal.Decimal) Pair {
	if currency == "USD" {
		p.USD = p.USD.Add(amount)
	} else {
		p.ARS = p.ARS.Add(amount)
	}
	return p
}

type BalanceSection struct {
	Current    Pair `json:"corrientes"`
	NonCurrent Pair `json:"no_corrientes"`
	Total      Pair `json:"total"`
}

type MonthlyPosition struct {
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	ScopeID      *string         `json:"scope_id,omitempty"`
	Assets       BalanceSection  `json:"activo"`
	Liabilities  BalanceSection  `json:"pasivo"`
	Equity       decimal.Decimal `json:"patrimonio_neto"`
	Income       Pair            `json:"ingresos"`
	Costs        Pair            `json:"costos"`
	Expenses     Pair            `json:"gastos"`
	Resultado    Pair            `json:"resultado"`
	ResultadoARS decimal.Decimal `json:"resultado_ars_equivalente"`
	Balanceado   bool            `json:"balanceado"`
	Diferencia   decimal.Decimal `json:"diferencia"`
}

// Monthly aggregates all ledger movements and classified account balances of
// a calendar month into a balance sheet and income statement, and verifies
// the accounting identity Assets = Liabilities + Equity on the ARS columns.
func (s *PositionService) Monthly(ctx context.Context, year int, month time.Month, scopeID *string) (MonthlyPosition, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	balances, err := s.accounts.ListClassifiedBalances(ctx, scopeID)
	if err != nil {
		return MonthlyPosition{}, err
	}
	movements, err := s.ledger.ListByPeriod(ctx, from, to, scopeID)
	if err != nil {
		return MonthlyPosition{}, err
	}

	position := MonthlyPosition{Year: year, Month: int(month), ScopeID: scopeID}
	for _, balance := range balances {
		switch balance.Category {
		case models.AccountCategoryAsset:
			position.Assets = addToSection(position.Assets, balance)
		case models.AccountCategoryLiability:
			position.Liabilities = addToSection(position.Liabilities, balance)
		case models.AccountCategoryEquity:
			// Equity is a single ARS aggregate with no currency split.
			position.Equity = position.Equity.Add(balance.Balance)
		}
	}

	blended := decimal.Zero
	for _, movement := range movements {
		switch movement.Category {
		case models.AccountCategoryIncome:
			position.Income = position.Income.add(movement.Currency, movement.AmountOriginal)
			blended = blended.Add(movement.AmountARSEquivalent)
		case models.AccountCategoryCost:
			position.Costs = position.Costs.add(movement.Currency, movement.AmountOriginal)
			blended = blended.Sub(movement.AmountARSEquivalent)
		case models.AccountCategoryExpense:
			position.Expenses = position.Expenses.add(movement.Currency, movement.AmountOriginal)
			blended = blended.Sub(movement.AmountARSEquivalent)
		}
	}
	position.Resultado = Pair{
		ARS: position.Income.ARS.Sub(position.Costs.ARS).Sub(position.Expenses.ARS),
		USD: position.Income.USD.Sub(position.Costs.USD).Sub(position.Expenses.USD),
	}
	// The blended result reuses the ARS equivalents stored on each movement;
	// it never re-derives from a point-in-time rate.
	position.ResultadoARS = blended

	position.Diferencia = position.Assets.Total.ARS.Sub(position.Liabilities.Total.ARS.Add(position.Equity))
	position.Balanceado = position.Diferencia.Abs().LessThan(balanceTolerance)
	return position, nil
}

func addToSection(section BalanceSection, balance store.ClassifiedBalance) BalanceSection {
	if balance.IsCurrent {
		section.Current = section.Current.add(balance.Currency, balance.Balance)
	} else {
		section.NonCurrent = section.NonCurrent.add(balance.Currency, balance.Balance)
	}
	section.Total = section.Total.add(balance.Currency, balance.Balance)
	return section
}
