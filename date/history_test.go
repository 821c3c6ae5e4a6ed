package date

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func nav(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestHistory_AppendKeepsChronologicalOrder(t *testing.T) {
	var h History
	// insert out of order on purpose
	h.Append(MustParse("13-May-2024"), nav("45.6789"))
	h.Append(MustParse("10-May-2024"), nav("45.10"))
	h.Append(MustParse("12-May-2024"), nav("45.50"))

	want := []string{"10-May-2024", "12-May-2024", "13-May-2024"}
	got := h.Dates()
	if len(got) != len(want) {
		t.Fatalf("Len = %d, want %d", len(got), len(want))
	}
	for i, day := range got {
		if day.String() != want[i] {
			t.Errorf("Dates()[%d] = %s, want %s", i, day, want[i])
		}
	}
}

func TestHistory_AppendOverwritesSameDay(t *testing.T) {
	var h History
	day := MustParse("13-May-2024")
	h.Append(day, nav("45.0"))
	h.Append(day, nav("45.5"))
	if h.Len() != 1 {
		t.Fatalf("Len = %d, want 1", h.Len())
	}
	if got, _ := h.On(day); !got.Equal(nav("45.5")) {
		t.Errorf("On(%s) = %s, want 45.5", day, got)
	}
}

func TestHistory_Latest(t *testing.T) {
	var h History
	if day, _ := h.Latest(); !day.IsZero() {
		t.Errorf("Latest on empty history = %v, want zero", day)
	}
	h.Append(MustParse("12-May-2024"), nav("45.50"))
	h.Append(MustParse("13-May-2024"), nav("45.6789"))
	day, v := h.Latest()
	if day.String() != "13-May-2024" || !v.Equal(nav("45.6789")) {
		t.Errorf("Latest = %s %s, want 13-May-2024 45.6789", day, v)
	}
	pday, pv, ok := h.Penultimate()
	if !ok || pday.String() != "12-May-2024" || !pv.Equal(nav("45.50")) {
		t.Errorf("Penultimate = %s %s %v, want 12-May-2024 45.50 true", pday, pv, ok)
	}
}

func TestHistory_JSONPreservesOrder(t *testing.T) {
	var h History
	h.Append(MustParse("10-May-2024"), nav("45.10"))
	h.Append(MustParse("12-May-2024"), nav("45.50"))
	h.Append(MustParse("13-May-2024"), nav("45.6789"))

	data, err := json.Marshal(&h)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"10-May-2024":45.1,"12-May-2024":45.5,"13-May-2024":45.6789}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestHistory_UnmarshalRepairsOrder(t *testing.T) {
	// an older revision could persist entries out of order; load must re-sort
	in := `{"13-May-2024":45.6789,"10-May-2024":45.1,"12-May-2024":45.5}`
	var h History
	if err := json.Unmarshal([]byte(in), &h); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	day, v := h.Latest()
	if day.String() != "13-May-2024" || !v.Equal(nav("45.6789")) {
		t.Errorf("Latest after repair = %s %s, want 13-May-2024 45.6789", day, v)
	}
	if first := h.Dates()[0]; first.String() != "10-May-2024" {
		t.Errorf("first date = %s, want 10-May-2024", first)
	}
}

func TestHistory_UnmarshalRejectsGarbage(t *testing.T) {
	var h History
	if err := json.Unmarshal([]byte(`{"not-a-date":1}`), &h); err == nil {
		t.Error("expected an error for a bad date key")
	}
	if err := json.Unmarshal([]byte(`[1,2]`), &h); err == nil {
		t.Error("expected an error for a non-object payload")
	}
}
