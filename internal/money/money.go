// Package money provides exact-decimal monetary amounts and unit-tagged
// quantities. Amounts keep the digits they were created with: "10090.00"
// stays "10090.00" through arithmetic-free round trips, and equality is
// sensitive to the number of decimal places.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidCurrency reports whether code is a well-formed ISO 4217 alpha code.
func ValidCurrency(code string) bool {
	return currencyPattern.MatchString(code)
}

// Money is an exact decimal amount in a single currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// New parses amount and returns it tagged with the given currency.
func New(amount, currency string) (Money, error) {
	if !ValidCurrency(currency) {
		return Money{}, fmt.Errorf("invalid currency code %q", currency)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	return Money{Amount: d, Currency: currency}, nil
}

// MustNew is like New but panics on error. Intended for literals.
func MustNew(amount, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal tags an existing decimal with a currency.
func FromDecimal(d decimal.Decimal, currency string) Money {
	return Money{Amount: d, Currency: currency}
}

// Equal reports whether m and o have the same currency, the same value,
// and the same number of decimal places. 100.5 EUR and 100.50 EUR are
// not equal.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency &&
		m.Amount.Equal(o.Amount) &&
		m.Amount.Exponent() == o.Amount.Exponent()
}

// String renders the amount followed by the currency code.
func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}
