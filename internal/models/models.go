package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DebtStatusPending = "PENDING"
	DebtStatusPaid    = "PAID"

	DirectionIncome  = "INCOME"
	DirectionExpense = "EXPENSE"

	PayerCustomer = "CUSTOMER"
	PayerOperator = "OPERATOR"

	CounterpartyCustomer = "customer"
	CounterpartyOperator = "operator"

	MovementCustomerPayment = "CUSTOMER_PAYMENT"
	MovementOperatorPayment = "OPERATOR_PAYMENT"

	AccountCategoryAsset     = "asset"
	AccountCategoryLiability = "liability"
	AccountCategoryEquity    = "equity"
	AccountCategoryIncome    = "income"
	AccountCategoryCost      = "cost"
	AccountCategoryExpense   = "expense"
)

type Counterparty struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Kind      string    `db:"kind" json:"kind"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Debt struct {
	ID             string          `db:"id" json:"id"`
	CounterpartyID string          `db:"counterparty_id" json:"counterparty_id"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount" json:"paid_amount"`
	Currency       string          `db:"currency" json:"currency"`
	Status         string          `db:"status" json:"status"`
	DueDate        time.Time       `db:"due_date" json:"due_date"`
	PaidAt         *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type PaymentRecord struct {
	ID            string           `db:"id" json:"id"`
	DebtID        string           `db:"debt_id" json:"debt_id"`
	Direction     string           `db:"direction" json:"direction"`
	PayerKind     string           `db:"payer_kind" json:"payer_kind"`
	Method        string           `db:"method" json:"method"`
	Amount        decimal.Decimal  `db:"amount" json:"amount"`
	Currency      string           `db:"currency" json:"currency"`
	AmountUSD     decimal.Decimal  `db:"amount_usd" json:"amount_usd"`
	ExchangeRate  *decimal.Decimal `db:"exchange_rate" json:"exchange_rate,omitempty"`
	DatePaid      time.Time        `db:"date_paid" json:"date_paid"`
	Status        string           `db:"status" json:"status"`
	Reference     *string          `db:"reference" json:"reference,omitempty"`
	ReceiptNumber *string          `db:"receipt_number" json:"receipt_number,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
}

type LedgerMovement struct {
	ID                  string           `db:"id" json:"id"`
	Type                string           `db:"type" json:"type"`
	Concept             string           `db:"concept" json:"concept"`
	Currency            string           `db:"currency" json:"currency"`
	AmountOriginal      decimal.Decimal  `db:"amount_original" json:"amount_original"`
	ExchangeRate        *decimal.Decimal `db:"exchange_rate" json:"exchange_rate,omitempty"`
	AmountARSEquivalent decimal.Decimal  `db:"amount_ars_equivalent" json:"amount_ars_equivalent"`
	AmountUSDEquivalent decimal.Decimal  `db:"amount_usd_equivalent" json:"amount_usd_equivalent"`
	AccountID           string           `db:"account_id" json:"account_id"`
	CounterpartyID      *string          `db:"counterparty_id" json:"counterparty_id,omitempty"`
	RelatedEntityID     *string          `db:"related_entity_id" json:"related_entity_id,omitempty"`
	ReceiptNumber       *string          `db:"receipt_number" json:"receipt_number,omitempty"`
	ScopeID             *string          `db:"scope_id" json:"scope_id,omitempty"`
	MovementDate        time.Time        `db:"movement_date" json:"movement_date"`
	CreatedAt           time.Time        `db:"created_at" json:"created_at"`
}

type CashMovement struct {
	ID           string          `db:"id" json:"id"`
	CashBoxID    *string         `db:"cash_box_id" json:"cash_box_id,omitempty"`
	Type         string          `db:"type" json:"type"`
	Category     string          `db:"category" json:"category"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Currency     string          `db:"currency" json:"currency"`
	MovementDate time.Time       `db:"movement_date" json:"movement_date"`
	PaymentID    *string         `db:"payment_id" json:"payment_id,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

type CashBox struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Currency  string    `db:"currency" json:"currency"`
	IsDefault bool      `db:"is_default" json:"is_default"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type ChartAccount struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	Category  string    `db:"category" json:"category"`
	IsCurrent bool      `db:"is_current" json:"is_current"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type FinancialAccount struct {
	ID             string          `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Currency       string          `db:"currency" json:"currency"`
	ChartAccountID *string         `db:"chart_account_id" json:"chart_account_id,omitempty"`
	Balance        decimal.Decimal `db:"balance" json:"balance"`
	ScopeID        *string         `db:"scope_id" json:"scope_id,omitempty"`
	IsActive       bool            `db:"is_active" json:"is_active"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
}

type Partner struct {
	ID               string          `db:"id" json:"id"`
	Name             string          `db:"name" json:"name"`
	ProfitPercentage decimal.Decimal `db:"profit_percentage" json:"profit_percentage"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
}
