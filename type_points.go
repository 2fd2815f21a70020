package pokergame

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// Points is a number of chips. Chips are whole, there is no fraction of a point.
type Points int64

// PointsFor converts a cash amount into points at rate (the cash value of one
// point). The conversion always rounds down: the fractional remainder is
// neither converted nor refunded.
func PointsFor(cash, rate Money) Points {
	if !rate.IsPositive() || !cash.IsPositive() {
		return 0
	}
	q, _ := cash.value.QuoRem(rate.value, 0)
	return Points(q.IntPart())
}

// Value returns the cash value of p at rate.
func (p Points) Value(rate Money) Money {
	return Money{value: rate.value.Mul(decimal.NewFromInt(int64(p))), cur: rate.cur}
}

func (p Points) String() string { return strconv.FormatInt(int64(p), 10) }

// ParsePoints parses a non-negative whole number of points.
func ParsePoints(s string) (Points, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, &parseError{what: "points", input: s}
	}
	return Points(n), nil
}

type parseError struct {
	what, input string
}

func (e *parseError) Error() string { return "invalid " + e.what + " " + strconv.Quote(e.input) }
func (e *parseError) Unwrap() error { return ErrInvalidAmount }
