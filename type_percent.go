package tracker

import "github.com/shopspring/decimal"

// Percent is a percentage value, kept as a decimal so that the 3-decimal
// store precision survives JSON round trips.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Equal(q Percent) bool { return p.value.Equal(q.value) }
func (p Percent) IsNegative() bool     { return p.value.IsNegative() }

func (p Percent) String() string { return p.value.String() + "%" }

// SignedString renders the value with an explicit sign, "-" when zero.
func (p Percent) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}
func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	return p.value.UnmarshalJSON(decimalBytes)
}
