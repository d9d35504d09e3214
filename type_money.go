package finvest

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency of the dashboard. The whole
// portfolio is quoted in a single currency.
const DefaultCurrency = "BRL"

// Money is a monetary value in the dashboard's display currency,
// backed by a decimal so that quantity times price stays exact.
type Money struct {
	value decimal.Decimal
}

func M(value float64) Money { return Money{value: decimal.NewFromFloat(value)} }

func (m Money) Equal(n Money) bool  { return m.value.Equal(n.value) }
func (m Money) IsZero() bool        { return m.value.IsZero() }
func (m Money) IsPositive() bool    { return m.value.IsPositive() }
func (m Money) IsNegative() bool    { return m.value.IsNegative() }
func (m Money) Add(n Money) Money   { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money   { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money {
	return Money{value: m.value.Mul(q.value)}
}

// PercentOf returns m as a percentage of base. A zero base yields 0: a
// portfolio with no invested capital has no meaningful return.
func (m Money) PercentOf(base Money) Percent {
	if base.value.IsZero() {
		return 0
	}
	return Percent(m.value.Div(base.value).InexactFloat64() * 100)
}

// AsFloat converts to float64 for display projections only; internal
// arithmetic stays on the decimal.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

// String formats the value with the display currency, e.g. "R$3.520,00".
func (m Money) String() string {
	cur := money.GetCurrency(DefaultCurrency)
	cents := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(cents.IntPart())
}

// SignedString is String with an explicit sign, and "-" for zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON encodes the amount as a plain JSON number rounded to the
// currency fraction.
func (m Money) MarshalJSON() ([]byte, error) {
	cur := money.GetCurrency(DefaultCurrency)
	return []byte(m.value.Round(int32(cur.Fraction)).String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error { return m.value.UnmarshalJSON(b) }
