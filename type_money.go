package pokergame

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency used by DefaultConfig.
const DefaultCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates Money from a numeric value.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal amount such as "10.07". Floats are never
// involved so the amount is kept exactly as written.
func ParseMoney(s, currency string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("cannot parse amount %q: %w", s, ErrInvalidAmount)
	}
	return Money{value: d, cur: currency}, nil
}

// ValidateCurrency returns an error if code is not a currency known to go-money.
func ValidateCurrency(code string) error {
	if code == "" {
		return fmt.Errorf("currency code is missing")
	}
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, rounded to
// the currency minor unit, e.g. "$40.00".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Round returns m rounded to the currency minor unit.
func (m Money) Round() Money {
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// Floor returns m rounded down to the currency minor unit.
func (m Money) Floor() Money {
	return Money{value: m.value.RoundFloor(int32(m.currency().Fraction)), cur: m.cur}
}

// Unit returns the smallest amount representable in m's currency.
func (m Money) Unit() Money {
	return Money{value: decimal.New(1, -int32(m.currency().Fraction)), cur: m.cur}
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) Cmp(n Money) int                 { return m.value.Cmp(n.value) }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool    { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Min returns the smaller of m and n.
func (m Money) Min(n Money) Money {
	if n.LessThan(m) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// In returns m expressed in currency. It fails if m already has another currency.
func (m Money) In(currency string) (Money, error) {
	if m.cur != "" && m.cur != currency {
		return m, fmt.Errorf("amount %s is not in %s", m, currency)
	}
	return Money{value: m.value, cur: currency}, nil
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-".
func (m Money) SignedString() string {
	if m.Round().IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// MarshalJSON writes the bare amount with all its digits. The currency is
// carried by the Session, not by every amount.
func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

// UnmarshalJSON reads a bare amount. The currency is left empty.
func (m *Money) UnmarshalJSON(data []byte) error {
	m.cur = ""
	return m.value.UnmarshalJSON(data)
}
