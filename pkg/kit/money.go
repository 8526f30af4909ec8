package kit

import "github.com/shopspring/decimal"

// Money is a decimal amount that encodes as a bare JSON number with two
// fraction digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}
