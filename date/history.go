package date

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/shopspring/decimal"
)

// History stores a chronological series of NAV values, each associated with
// a specific date. Dates are unique and the series is always sorted
// oldest first, so "last entry" semantics mean "most recent trading day
// on record".
type History struct {
	days []Date
	navs []decimal.Decimal
}

// Len returns the number of entries in the history.
func (h *History) Len() int { return len(h.days) }

// Latest returns the latest date and NAV in the history.
// If the history is empty, it returns zero values.
func (h *History) Latest() (day Date, nav decimal.Decimal) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Decimal{}
	}
	return h.days[last], h.navs[last]
}

// Penultimate returns the second most recent date and NAV in the history.
// ok is false when the history has fewer than two entries.
func (h *History) Penultimate() (day Date, nav decimal.Decimal, ok bool) {
	i := len(h.days) - 2
	if i < 0 {
		return Date{}, decimal.Decimal{}, false
	}
	return h.days[i], h.navs[i], true
}

// On returns the NAV recorded for the given date.
func (h *History) On(day Date) (nav decimal.Decimal, ok bool) {
	if i := slices.Index(h.days, day); i >= 0 {
		return h.navs[i], true
	}
	return decimal.Decimal{}, false
}

// chronological is a private implementation to make this history chronologically sorted.
type chronological struct{ *History }

func (s chronological) Len() int           { return len(s.days) }
func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.navs[i], s.navs[j] = s.navs[j], s.navs[i]
}

func (h *History) sort() { sort.Sort(chronological{h}) }

// Append adds a NAV point to the history, keeping it chronologically
// sorted. An existing value at that date is overwritten, so re-processing
// a feed for an already recorded day is harmless.
func (h *History) Append(on Date, nav decimal.Decimal) *History {
	if i := slices.Index(h.days, on); i >= 0 {
		h.navs[i] = nav
		return h
	}
	h.days, h.navs = append(h.days, on), append(h.navs, nav)
	h.sort()
	return h
}

// Dates returns the dates of the history, oldest first.
func (h *History) Dates() []Date { return slices.Clone(h.days) }

// Values returns an iterator over all date/NAV pairs, oldest first.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, day := range h.days {
			if !yield(day, h.navs[i]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the history as a JSON object whose keys appear in
// chronological order. encoding/json would sort map keys alphabetically,
// which scrambles dd-Mon-yyyy keys, so the object is written by hand.
func (h *History) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range h.days {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(day.String())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		// write the NAV as a bare number; decimal's MarshalJSON quotes
		// or not depending on a process-global flag
		buf.WriteString(h.navs[i].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of date keys to NAV values. The input
// order is not trusted: entries are re-sorted chronologically, so stores
// written by older revisions (which appended out of order) are repaired
// on load.
func (h *History) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("nav history: expected JSON object, got %v", tok)
	}

	h.days, h.navs = nil, nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		day, err := Parse(keyTok.(string))
		if err != nil {
			return fmt.Errorf("nav history: %w", err)
		}
		var num json.Number
		if err := dec.Decode(&num); err != nil {
			return fmt.Errorf("nav history value for %s: %w", day, err)
		}
		nav, err := decimal.NewFromString(num.String())
		if err != nil {
			return fmt.Errorf("nav history value for %s: %w", day, err)
		}
		h.days, h.navs = append(h.days, day), append(h.navs, nav)
	}
	// consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	h.sort()
	return nil
}

var _ json.Marshaler = (*History)(nil)
var _ json.Unmarshaler = (*History)(nil)
