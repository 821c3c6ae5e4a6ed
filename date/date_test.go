package date

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "13-May-2024", want: New(2024, time.May, 13)},
		{in: "01-Jan-2020", want: New(2020, time.January, 1)},
		{in: "31-Dec-1999", want: New(1999, time.December, 31)},
		{in: "2024-05-13", wantErr: true},
		{in: "13/05/2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) expected an error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	in := "13-May-2024"
	if got := MustParse(in).String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
}

func TestAdd(t *testing.T) {
	testCases := []struct {
		in   string
		days int
		want string
	}{
		{"13-May-2024", -1, "12-May-2024"},
		{"01-Mar-2024", -1, "29-Feb-2024"}, // leap year
		{"31-Dec-2023", 1, "01-Jan-2024"},
	}
	for _, tc := range testCases {
		if got := MustParse(tc.in).Add(tc.days).String(); got != tc.want {
			t.Errorf("%s.Add(%d) = %s, want %s", tc.in, tc.days, got, tc.want)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	d := MustParse("13-May-2024")
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `"13-May-2024"` {
		t.Errorf("Marshal = %s, want %q", data, `"13-May-2024"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back, d)
	}
}

func TestDate_MapKey(t *testing.T) {
	// Date is used as a JSON object key in the orders store.
	m := map[Date]int{MustParse("13-May-2024"): 1}
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back map[Date]int
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back[MustParse("13-May-2024")] != 1 {
		t.Errorf("map key round trip failed: %s", data)
	}
}
