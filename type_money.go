package tracker

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in Indian rupees, the only currency the
// AMFI feed quotes in. Every arithmetic result that reaches a report or the
// store is rounded to 3 decimal places via Round3, step by step, which is
// the persisted precision of all revisions of the dayChange store.
type Money struct {
	value decimal.Decimal
}

func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// inr is the fixed display currency.
func inr() *money.Currency { return money.New(0, money.INR).Currency() }

func (m Money) Add(n Money) Money     { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money     { return Money{value: m.value.Sub(n.value)} }
func (m Money) Neg() Money            { return Money{value: m.value.Neg()} }
func (m Money) Mul(q Quantity) Money  { return Money{value: m.value.Mul(q.value)} }
func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) }
func (m Money) IsZero() bool          { return m.value.IsZero() }
func (m Money) IsPositive() bool      { return m.value.IsPositive() }
func (m Money) IsNegative() bool      { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool { return m.value.LessThan(n.value) }
func (m Money) Decimal() decimal.Decimal { return m.value }

// Round3 rounds to the store precision of 3 decimal places.
func (m Money) Round3() Money { return Money{value: m.value.Round(3)} }

// PercentOf returns m as a percentage of base, rounded to 3 decimal places.
// base must not be zero; callers guard with ErrNothingInvested.
func (m Money) PercentOf(base Money) Percent {
	return Percent{value: m.value.Div(base.value).Mul(decimal.NewFromInt(100)).Round(3)}
}

// String renders the value with the rupee symbol, e.g. "₹4,500.00".
func (m Money) String() string {
	cur := inr()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString renders the value with an explicit sign, "-" when zero.
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}
func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
