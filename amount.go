package register

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/govalues/decimal"
)

// centScale is the number of digits after the decimal point required for
// representing a cent in dollars.
const centScale = 2

var (
	errAmountOverflow = errors.New("amount overflow")
	errNegativeAmount = errors.New("negative amount")
)

// halfCent is added before flooring to round half a cent up.
var halfCent = decimal.MustNew(5, centScale+1)

// toMinorUnits returns a (possibly rounded) amount in cents.
// If the scale of the amount is greater than 2, then the fractional part is
// rounded using [rounding half up], towards positive infinity on a tie,
// so 0.125 becomes 13 cents and -0.125 becomes -12 cents.
//
// [rounding half up]: https://en.wikipedia.org/wiki/Rounding#Rounding_half_up
func toMinorUnits(d decimal.Decimal) (int64, error) {
	if d.Scale() > centScale {
		h, err := d.Add(halfCent)
		if err != nil {
			return 0, fmt.Errorf("converting %v to cents: %w", d, err)
		}
		d = h.Floor(centScale)
	}
	d = d.Pad(centScale)
	if d.Scale() != centScale {
		return 0, fmt.Errorf("converting %v to cents: %w", d, errAmountOverflow)
	}
	u := d.Coef()
	if d.IsNeg() {
		if u > -math.MinInt64 {
			return 0, fmt.Errorf("converting %v to cents: %w", d, errAmountOverflow)
		}
		return -int64(u), nil //nolint:gosec
	}
	if u > math.MaxInt64 {
		return 0, fmt.Errorf("converting %v to cents: %w", d, errAmountOverflow)
	}
	return int64(u), nil
}

// fromMinorUnits converts cents to dollars.
// Trailing zeros are removed, so 50 cents becomes 0.5 and 6000 cents becomes 60.
func fromMinorUnits(units int64) decimal.Decimal {
	return decimal.MustNew(units, centScale).Trim(0)
}

// addMinorUnits returns a + b or an error if the sum does not fit into int64.
func addMinorUnits(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, errAmountOverflow
	}
	return a + b, nil
}

// DecimalFromFloat64 converts a float to a (possibly rounded) decimal.
// The conversion goes through the shortest decimal representation of the
// float, so 0.1 becomes exactly 0.1 rather than the nearest binary fraction.
//
// DecimalFromFloat64 returns an error if:
//   - the float is a special value (NaN or Inf);
//   - the integer part of the result has more than [decimal.MaxPrec] digits.
func DecimalFromFloat64(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Decimal{}, fmt.Errorf("converting float: special value %v", f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("converting float: %w", err)
	}
	return d, nil
}
