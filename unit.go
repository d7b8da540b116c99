package register

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var errPartialUnit = errors.New("amount is not a multiple of face value")

// Unit represents an amount of money held in, or paid out in, a single
// denomination.
// For example, Unit{Quarter, 0.5} stands for two quarters.
//
// The JSON form of a unit is a two-element array:
//
//	["QUARTER", 0.5]
type Unit struct {
	Denom  Denomination
	Amount decimal.Decimal // in dollars
}

// NewUnit converts a denomination name and a decimal string to a unit.
// See also constructors [ParseDenom] and [decimal.Parse].
func NewUnit(denom, amount string) (Unit, error) {
	d, err := ParseDenom(denom)
	if err != nil {
		return Unit{}, fmt.Errorf("parsing denomination: %w", err)
	}
	a, err := decimal.Parse(amount)
	if err != nil {
		return Unit{}, fmt.Errorf("parsing amount: %w", err)
	}
	return Unit{Denom: d, Amount: a}, nil
}

// MustNewUnit is like [NewUnit] but panics if any of the strings cannot be parsed.
func MustNewUnit(denom, amount string) Unit {
	u, err := NewUnit(denom, amount)
	if err != nil {
		panic(fmt.Sprintf("NewUnit(%q, %q) failed: %v", denom, amount, err))
	}
	return u
}

// NewUnitFromFloat64 converts a denomination name and a float to a unit.
// See also constructor [DecimalFromFloat64].
func NewUnitFromFloat64(denom string, amount float64) (Unit, error) {
	d, err := ParseDenom(denom)
	if err != nil {
		return Unit{}, fmt.Errorf("parsing denomination: %w", err)
	}
	a, err := DecimalFromFloat64(amount)
	if err != nil {
		return Unit{}, err
	}
	return Unit{Denom: d, Amount: a}, nil
}

// unitFromMinorUnits is the inverse of [Unit.MinorUnits].
func unitFromMinorUnits(d Denomination, units int64) Unit {
	return Unit{Denom: d, Amount: fromMinorUnits(units)}
}

// MinorUnits returns the (possibly rounded) amount of the unit in cents.
func (u Unit) MinorUnits() (int64, error) {
	return toMinorUnits(u.Amount)
}

// Count returns the number of coins or notes the unit stands for.
// For example, Unit{Quarter, 0.5}.Count() returns 2.
//
// Count returns an error if the amount is negative or is not a whole multiple
// of the face value of the denomination.
func (u Unit) Count() (int64, error) {
	if !u.Denom.valid() {
		return 0, fmt.Errorf("counting %v: %w", u, errInvalidDenomination)
	}
	units, err := u.MinorUnits()
	if err != nil {
		return 0, fmt.Errorf("counting %v: %w", u, err)
	}
	if units < 0 {
		return 0, fmt.Errorf("counting %v: %w", u, errNegativeAmount)
	}
	face := u.Denom.MinorUnits()
	if units%face != 0 {
		return 0, fmt.Errorf("counting %v: %w", u, errPartialUnit)
	}
	return units / face, nil
}

// String method implements the [fmt.Stringer] interface and returns
// a string like "QUARTER 0.5".
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (u Unit) String() string {
	return u.Denom.Name() + " " + u.Amount.String()
}

// MarshalJSON implements the [json.Marshaler] interface.
// The amount is written as a JSON number.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (u Unit) MarshalJSON() ([]byte, error) {
	name, err := u.Denom.MarshalJSON()
	if err != nil {
		return nil, err
	}
	text := make([]byte, 0, len(name)+24)
	text = append(text, '[')
	text = append(text, name...)
	text = append(text, ',')
	text = append(text, u.Amount.String()...)
	text = append(text, ']')
	return text, nil
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// It accepts the amount either as a JSON number or as a JSON string.
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (u *Unit) UnmarshalJSON(text []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(text, &pair); err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Unit{}, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("unmarshaling %T: want [name, amount], got %d elements", Unit{}, len(pair))
	}
	var d Denomination
	if err := d.UnmarshalJSON(pair[0]); err != nil {
		return err
	}
	raw := pair[1]
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		raw = raw[1 : len(raw)-1]
	}
	a, err := decimal.Parse(string(raw))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Unit{}, err)
	}
	u.Denom, u.Amount = d, a
	return nil
}
