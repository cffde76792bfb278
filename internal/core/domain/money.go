package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	EUR Currency = "EUR"
)

// Places is the fixed precision used for amounts and quantities.
const Places = 2

// Money holds a decimal amount and its currency.
// Example: 5.90 EUR is Money{Amount: 5.9, Currency: EUR}.
type Money struct {
	Amount   decimal.Decimal
	Currency Currency
}

// NewMoney creates a new Money instance
func NewMoney(amount decimal.Decimal, currency Currency) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// Quantize rounds a value to two places, half away from zero.
func Quantize(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// FormatFixed renders a value with exactly two decimal places ("2" -> "2.00").
func FormatFixed(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// Add adds two Money instances safely
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: cannot add %s to %s", ErrCurrencyMismatch, other.Currency, m.Currency)
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

// Mul multiplies the amount by a quantity, keeping the currency.
func (m Money) Mul(quantity decimal.Decimal) Money {
	return Money{
		Amount:   m.Amount.Mul(quantity),
		Currency: m.Currency,
	}
}

// Quantized returns the same money rounded to two places.
func (m Money) Quantized() Money {
	return Money{Amount: Quantize(m.Amount), Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Equal compares the quantized amounts and the currency.
func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && Quantize(m.Amount).Equal(Quantize(other.Amount))
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", FormatFixed(m.Amount), m.Currency)
}
