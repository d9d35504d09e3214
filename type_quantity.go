package finvest

import "github.com/shopspring/decimal"

// Quantity is an exact number of units of an asset. It is backed by a
// decimal so that fractional holdings (0.005 BTC) stay exact.
type Quantity struct {
	value decimal.Decimal
}

func Q(value float64) Quantity { return Quantity{value: decimal.NewFromFloat(value)} }

func (q Quantity) Equal(p Quantity) bool { return q.value.Equal(p.value) }
func (q Quantity) IsZero() bool          { return q.value.IsZero() }
func (q Quantity) IsNegative() bool      { return q.value.IsNegative() }
func (q Quantity) String() string        { return q.value.String() }

// MarshalJSON encodes the quantity as a plain JSON number.
func (q Quantity) MarshalJSON() ([]byte, error) { return []byte(q.value.String()), nil }

func (q *Quantity) UnmarshalJSON(b []byte) error { return q.value.UnmarshalJSON(b) }
