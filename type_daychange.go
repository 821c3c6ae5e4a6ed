package tracker

import (
	"bytes"
	"encoding/json"
)

// sentinel spelling used by the persisted store for "no prior data".
const noDataLabel = "N.A."

// DayChange is the day-over-day move of a holding's value. Historical
// revisions of the store overloaded the numeric field with "N.A." or -1 to
// mean "no valid previous NAV"; DayChange carries that state explicitly
// instead, so a change of zero and "no data" are different values.
type DayChange struct {
	value Money
	valid bool
}

// NoDayChange is the "no valid previous NAV to diff against" sentinel.
var NoDayChange = DayChange{}

// DayChangeOf wraps a computed change.
func DayChangeOf(m Money) DayChange { return DayChange{value: m, valid: true} }

// Valid reports whether a change was actually computed.
func (c DayChange) Valid() bool { return c.valid }

// Value returns the computed change, zero when invalid.
func (c DayChange) Value() Money { return c.value }

// String renders the change, or "N.A." when there is no prior data.
func (c DayChange) String() string {
	if !c.valid {
		return noDataLabel
	}
	return c.value.SignedString()
}

// MarshalJSON writes the change as a bare number, or as the string "N.A."
// when no comparison was possible, matching the store format.
func (c DayChange) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return json.Marshal(noDataLabel)
	}
	return c.value.MarshalJSON()
}

// UnmarshalJSON accepts a number, the string "N.A.", or the legacy -1
// integer sentinel written by early revisions of the store.
func (c *DayChange) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		// any string value means "no data"
		*c = NoDayChange
		return nil
	}
	if string(trimmed) == "-1" {
		*c = NoDayChange
		return nil
	}
	var m Money
	if err := m.UnmarshalJSON(trimmed); err != nil {
		return err
	}
	*c = DayChangeOf(m)
	return nil
}

var _ json.Marshaler = DayChange{}
var _ json.Unmarshaler = (*DayChange)(nil)
