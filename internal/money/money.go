package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	ARS Currency = "ARS"
	USD Currency = "USD"
)

var (
	ErrInvalidCurrency     = errors.New("invalid currency")
	ErrInvalidExchangeRate = errors.New("invalid exchange rate")
)

// Stored money amounts keep two decimal places; exchange rates keep six.
const (
	amountPlaces = 2
	ratePlaces   = 6
)

func ParseCurrency(raw string) (Currency, error) {
	switch Currency(raw) {
	case ARS:
		return ARS, nil
	case USD:
		return USD, nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Convert moves an amount between ARS and USD at the given rate, which is
// expressed as ARS per USD. Same-currency conversion is the identity and
// ignores the rate. A cross-currency conversion with a rate of zero or less
// is a caller precondition violation.
func Convert(amount decimal.Decimal, from, to Currency, rate decimal.Decimal) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, ErrInvalidExchangeRate
	}
	if from == ARS && to == USD {
		return amount.DivRound(rate, amountPlaces), nil
	}
	return amount.Mul(rate).RoundBank(amountPlaces), nil
}

// USDEquivalent computes the canonical USD value stored on payments so that
// downstream aggregation never re-derives historical rates. A USD amount is
// its own equivalent. An ARS amount without a usable rate yields zero: the
// aggregations still need a number, and zero is the documented degraded value
// rather than an error.
func USDEquivalent(amount decimal.Decimal, currency Currency, rate decimal.Decimal) decimal.Decimal {
	if currency == USD {
		return amount
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.DivRound(rate, amountPlaces)
}

// ARSEquivalent is the ledger-side mirror of USDEquivalent: every ledger
// movement carries an ARS value regardless of its native currency. Same
// degraded-zero policy when the rate is missing.
func ARSEquivalent(amount decimal.Decimal, currency Currency, rate decimal.Decimal) decimal.Decimal {
	if currency == ARS {
		return amount
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return amount.Mul(rate).RoundBank(amountPlaces)
}

// NormalizeRate rounds a caller-supplied rate to the stored precision.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	return rate.RoundBank(ratePlaces)
}
