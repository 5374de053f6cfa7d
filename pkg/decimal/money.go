package decimal

import (
	"github.com/shopspring/decimal"
)

// Money represents a dollar amount rounded to cents at the edges of the
// financing schedule. Intermediate math keeps full decimal precision.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Times scales the amount by a whole number of years or periods
func (m Money) Times(n int) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(int64(n)))}
}

// Split divides the amount into n equal installments. n <= 0 returns the amount unchanged.
func (m Money) Split(n int) Money {
	if n <= 0 {
		return m
	}
	return Money{m.Decimal.Div(decimal.NewFromInt(int64(n)))}
}

// ApplyMarkup increases the amount by rate (0.2 = +20%)
func (m Money) ApplyMarkup(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(1).Add(rate))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Mul multiplies by a decimal factor
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// Div divides by a decimal factor
func (m Money) Div(factor decimal.Decimal) Money {
	return Money{m.Decimal.Div(factor)}
}

// LessThan checks if this amount is less than another
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Sum adds any number of amounts
func Sum(amounts ...Money) Money {
	total := Zero()
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Min returns the minimum of two Money amounts
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}
