package validator

import (
	"errors"
	"regexp"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidRate     = errors.New("invalid exchange rate")
	ErrInvalidDate     = errors.New("invalid date")
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func ValidateCurrency(currency string) error {
	if currency != "ARS" && currency != "USD" {
		return ErrInvalidCurrency
	}
	return nil
}

func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

func ValidateRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	if rate.Exponent() < -6 {
		return ErrInvalidRate
	}
	return nil
}

func ValidateDate(raw string) error {
	if !dateRegex.MatchString(raw) {
		return ErrInvalidDate
	}
	return nil
}
