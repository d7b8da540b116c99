package register

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/govalues/decimal"
)

//go:generate go run scripts/denomination/codegen.go

// Denomination type represents a U.S. coin or note held in a cash drawer.
// The zero value is [Penny].
//
// Denomination is implemented as an integer index into in-memory arrays that
// store the canonical name and the face value in cents.
// Indexes follow the canonical drawer order, from the smallest face value to
// the largest.
//
// When persisting a denomination, use the name returned by
// the [Denomination.Name] method rather than the integer index.
type Denomination uint8

var errInvalidDenomination = errors.New("invalid denomination")

// ParseDenom converts a string to denomination.
// The input string must be in one of the following formats:
//
//	ONE HUNDRED
//	one hundred
//	ONE_HUNDRED
//
// ParseDenom returns an error if the string does not name a known denomination.
func ParseDenom(name string) (Denomination, error) {
	d, ok := denomLookup[name]
	if !ok {
		return Penny, fmt.Errorf("%w: %q", errInvalidDenomination, name)
	}
	return d, nil
}

// MustParseDenom is like [ParseDenom] but panics if the string cannot be parsed.
// It simplifies safe initialization of global variables holding denominations.
func MustParseDenom(name string) Denomination {
	d, err := ParseDenom(name)
	if err != nil {
		panic(fmt.Sprintf("ParseDenom(%q) failed: %v", name, err))
	}
	return d
}

// Denominations returns all denominations in canonical order.
func Denominations() []Denomination {
	denoms := make([]Denomination, len(nameLookup))
	for i := range denoms {
		denoms[i] = Denomination(i)
	}
	return denoms
}

func (d Denomination) valid() bool {
	return int(d) < len(nameLookup)
}

// Name returns the canonical name of the denomination, such as "QUARTER" or
// "ONE HUNDRED".
// For values outside of the known set Name returns "INVALID".
func (d Denomination) Name() string {
	if !d.valid() {
		return "INVALID"
	}
	return nameLookup[d]
}

// String method implements the [fmt.Stringer] interface and returns
// the canonical name of the denomination.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (d Denomination) String() string {
	return d.Name()
}

// MinorUnits returns the face value of the denomination in cents.
// For values outside of the known set MinorUnits returns 0.
func (d Denomination) MinorUnits() int64 {
	if !d.valid() {
		return 0
	}
	return unitsLookup[d]
}

// Face returns the face value of the denomination in dollars.
func (d Denomination) Face() decimal.Decimal {
	return fromMinorUnits(d.MinorUnits())
}

// UnmarshalJSON implements the [json.Unmarshaler] interface.
// See also constructor [ParseDenom].
//
// [json.Unmarshaler]: https://pkg.go.dev/encoding/json#Unmarshaler
func (d *Denomination) UnmarshalJSON(text []byte) error {
	if string(text) == "null" {
		return nil
	}
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	var err error
	*d, err = ParseDenom(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Penny, err)
	}
	return nil
}

// MarshalJSON implements the [json.Marshaler] interface.
// MarshalJSON always returns the canonical name.
//
// [json.Marshaler]: https://pkg.go.dev/encoding/json#Marshaler
func (d Denomination) MarshalJSON() ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("marshaling %T(%d): %w", d, uint8(d), errInvalidDenomination)
	}
	name := d.Name()
	text := make([]byte, 0, len(name)+2)
	text = append(text, '"')
	text = append(text, name...)
	text = append(text, '"')
	return text, nil
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseDenom].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (d *Denomination) UnmarshalText(text []byte) error {
	var err error
	*d, err = ParseDenom(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Penny, err)
	}
	return nil
}

// AppendText implements the [encoding.TextAppender] interface.
// AppendText always appends the canonical name.
//
// [encoding.TextAppender]: https://pkg.go.dev/encoding#TextAppender
func (d Denomination) AppendText(text []byte) ([]byte, error) {
	if !d.valid() {
		return nil, fmt.Errorf("marshaling %T(%d): %w", d, uint8(d), errInvalidDenomination)
	}
	return append(text, d.Name()...), nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// MarshalText always returns the canonical name.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (d Denomination) MarshalText() ([]byte, error) {
	return d.AppendText(nil)
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
// See also constructor [ParseDenom].
//
// [encoding.BinaryUnmarshaler]: https://pkg.go.dev/encoding#BinaryUnmarshaler
func (d *Denomination) UnmarshalBinary(data []byte) error {
	var err error
	*d, err = ParseDenom(string(data))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Penny, err)
	}
	return nil
}

// AppendBinary implements the [encoding.BinaryAppender] interface.
// AppendBinary always appends the canonical name.
//
// [encoding.BinaryAppender]: https://pkg.go.dev/encoding#BinaryAppender
func (d Denomination) AppendBinary(data []byte) ([]byte, error) {
	return d.AppendText(data)
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
// MarshalBinary always returns the canonical name.
//
// [encoding.BinaryMarshaler]: https://pkg.go.dev/encoding#BinaryMarshaler
func (d Denomination) MarshalBinary() ([]byte, error) {
	return d.AppendBinary(nil)
}

// Scan implements the [sql.Scanner] interface.
//
// [sql.Scanner]: https://pkg.go.dev/database/sql#Scanner
func (d *Denomination) Scan(value any) error {
	var err error
	switch value := value.(type) {
	case string:
		*d, err = ParseDenom(value)
	case []byte:
		*d, err = ParseDenom(string(value))
	case nil:
		err = fmt.Errorf("%T does not support null values", Penny)
	default:
		err = fmt.Errorf("type %T is not supported", value)
	}
	if err != nil {
		err = fmt.Errorf("converting from %T to %T: %w", value, Penny, err)
	}
	return err
}

// Value implements the [driver.Valuer] interface.
//
// [driver.Valuer]: https://pkg.go.dev/database/sql/driver#Valuer
func (d Denomination) Value() (driver.Value, error) {
	if !d.valid() {
		return nil, fmt.Errorf("converting %T(%d): %w", d, uint8(d), errInvalidDenomination)
	}
	return d.Name(), nil
}

// Format implements the [fmt.Formatter] interface.
// The following [format verbs] are available:
//
//	| Verb   | Example       | Description     |
//	| ------ | ------------- | --------------- |
//	| %s, %v | ONE HUNDRED   | Name            |
//	| %q     | "ONE HUNDRED" | Quoted name     |
//
// The '-' format flag can be used with all verbs.
//
// [format verbs]: https://pkg.go.dev/fmt#hdr-Printing
// [fmt.Formatter]: https://pkg.go.dev/fmt#Formatter
func (d Denomination) Format(state fmt.State, verb rune) {
	name := d.Name()
	namelen := len(name)

	// Opening and closing quotes
	lquote, tquote := 0, 0
	if verb == 'q' || verb == 'Q' {
		lquote, tquote = 1, 1
	}

	// Calculating padding
	width := lquote + namelen + tquote
	lspaces, tspaces := 0, 0
	if w, ok := state.Width(); ok && w > width {
		switch {
		case state.Flag('-'):
			tspaces = w - width
		default:
			lspaces = w - width
		}
		width = w
	}

	buf := make([]byte, 0, width)
	for i := 0; i < lspaces; i++ {
		buf = append(buf, ' ')
	}
	for i := 0; i < lquote; i++ {
		buf = append(buf, '"')
	}
	buf = append(buf, name...)
	for i := 0; i < tquote; i++ {
		buf = append(buf, '"')
	}
	for i := 0; i < tspaces; i++ {
		buf = append(buf, ' ')
	}

	// Writing result
	//nolint:errcheck
	switch verb {
	case 'q', 'Q', 's', 'S', 'v', 'V':
		state.Write(buf)
	default:
		state.Write([]byte("%!"))
		state.Write([]byte{byte(verb)})
		state.Write([]byte("(register.Denomination="))
		state.Write(buf)
		state.Write([]byte(")"))
	}
}
