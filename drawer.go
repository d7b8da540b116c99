package register

import (
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

var (
	errDrawerOrder = errors.New("drawer is not in canonical order")
	errOverdraw    = errors.New("change exceeds drawer contents")
)

// Drawer represents the contents of a cash drawer.
// Units are held in canonical order, from [Penny] to [OneHundred], with each
// denomination appearing at most once.
// A denomination that is missing from the drawer is treated as empty.
//
// The JSON form of a drawer is an array of units:
//
//	[["PENNY", 1.01], ["NICKEL", 2.05], ["DIME", 3.1]]
type Drawer []Unit

// Validate checks that every denomination is known, every amount is
// non-negative, and the units are in canonical order without duplicates.
func (d Drawer) Validate() error {
	for i, u := range d {
		if !u.Denom.valid() {
			return fmt.Errorf("drawer entry %d: %w", i, errInvalidDenomination)
		}
		if u.Amount.IsNeg() {
			return fmt.Errorf("drawer entry %d [%v]: %w", i, u, errNegativeAmount)
		}
		if i > 0 && u.Denom <= d[i-1].Denom {
			return fmt.Errorf("drawer entry %d [%v] after [%v]: %w", i, u, d[i-1], errDrawerOrder)
		}
	}
	return nil
}

// Clone returns a copy of the drawer that shares no memory with the original.
func (d Drawer) Clone() Drawer {
	if d == nil {
		return nil
	}
	c := make(Drawer, len(d))
	copy(c, d)
	return c
}

// minorUnits returns a private working copy of the drawer in cents together
// with the total.
func (d Drawer) minorUnits() (units []int64, total int64, err error) {
	units = make([]int64, len(d))
	for i, u := range d {
		units[i], err = u.MinorUnits()
		if err != nil {
			return nil, 0, fmt.Errorf("drawer entry %d: %w", i, err)
		}
		total, err = addMinorUnits(total, units[i])
		if err != nil {
			return nil, 0, fmt.Errorf("summing drawer: %w", err)
		}
	}
	return units, total, nil
}

// Total returns the sum of all amounts in the drawer.
func (d Drawer) Total() (decimal.Decimal, error) {
	_, total, err := d.minorUnits()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return fromMinorUnits(total), nil
}

// Sub returns the drawer that remains after paying out the change.
// The original drawer is not modified.
// Denominations emptied by the change are kept with a zero amount.
//
// Sub returns an error if the drawer is not valid or the change holds more of
// a denomination than the drawer does.
func (d Drawer) Sub(change []Unit) (Drawer, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	units, _, err := d.minorUnits()
	if err != nil {
		return nil, err
	}
	index := make(map[Denomination]int, len(d))
	for i, u := range d {
		index[u.Denom] = i
	}
	for _, c := range change {
		i, ok := index[c.Denom]
		if !ok {
			return nil, fmt.Errorf("paying out [%v]: %w", c, errOverdraw)
		}
		taken, err := c.MinorUnits()
		if err != nil {
			return nil, fmt.Errorf("paying out [%v]: %w", c, err)
		}
		if taken < 0 {
			return nil, fmt.Errorf("paying out [%v]: %w", c, errNegativeAmount)
		}
		if taken > units[i] {
			return nil, fmt.Errorf("paying out [%v] from [%v]: %w", c, d[i], errOverdraw)
		}
		units[i] -= taken
	}
	rest := make(Drawer, len(d))
	for i, u := range d {
		rest[i] = unitFromMinorUnits(u.Denom, units[i])
	}
	return rest, nil
}
