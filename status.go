package register

import (
	"errors"
	"fmt"
)

// Status represents the state of the cash drawer after a transaction.
// The zero value is [Open].
type Status uint8

const (
	// Open means the change was made and the drawer still holds money.
	Open Status = iota
	// InsufficientFunds means exact change cannot be made from the drawer.
	InsufficientFunds
	// Closed means the change owed drains the drawer exactly.
	Closed
)

var errInvalidStatus = errors.New("invalid status")

var statusLookup = [...]string{
	Open:              "OPEN",
	InsufficientFunds: "INSUFFICIENT_FUNDS",
	Closed:            "CLOSED",
}

// ParseStatus converts a string such as "INSUFFICIENT_FUNDS" to status.
func ParseStatus(s string) (Status, error) {
	for i, name := range statusLookup {
		if name == s {
			return Status(i), nil
		}
	}
	return Open, fmt.Errorf("%w: %q", errInvalidStatus, s)
}

// String method implements the [fmt.Stringer] interface.
//
// [fmt.Stringer]: https://pkg.go.dev/fmt#Stringer
func (s Status) String() string {
	if int(s) >= len(statusLookup) {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return statusLookup[s]
}

// UnmarshalText implements [encoding.TextUnmarshaler] interface.
// See also constructor [ParseStatus].
//
// [encoding.TextUnmarshaler]: https://pkg.go.dev/encoding#TextUnmarshaler
func (s *Status) UnmarshalText(text []byte) error {
	var err error
	*s, err = ParseStatus(string(text))
	if err != nil {
		return fmt.Errorf("unmarshaling %T: %w", Open, err)
	}
	return nil
}

// MarshalText implements [encoding.TextMarshaler] interface.
// JSON encoding uses it as well, so a status is written as a JSON string.
//
// [encoding.TextMarshaler]: https://pkg.go.dev/encoding#TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusLookup) {
		return nil, fmt.Errorf("marshaling %v: %w", s, errInvalidStatus)
	}
	return []byte(statusLookup[s]), nil
}
