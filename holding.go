package tracker

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Holding is one entry of the units ledger: units currently held in a fund
// and the total amount invested into it. It is mutated only by settlement.
type Holding struct {
	Units    Quantity
	Invested Money
}

// MarshalJSON writes the store format, a two element array [units, invested].
func (h Holding) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]json.Marshaler{h.Units, h.Invested})
}

func (h *Holding) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("holding: want [units, invested]: %w", err)
	}
	if err := h.Units.UnmarshalJSON(pair[0]); err != nil {
		return fmt.Errorf("holding units: %w", err)
	}
	if err := h.Invested.UnmarshalJSON(pair[1]); err != nil {
		return fmt.Errorf("holding invested: %w", err)
	}
	return nil
}

// Holdings is the units ledger, keyed by AMFI scheme code.
type Holdings map[string]Holding

// IDs returns the tracked scheme codes in stable order.
func (h Holdings) IDs() []string {
	return slices.Sorted(maps.Keys(h))
}

// Tracks reports whether the scheme code has a units entry.
func (h Holdings) Tracks(id string) bool {
	_, ok := h[id]
	return ok
}
