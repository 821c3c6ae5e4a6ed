package amfi

import (
	"strings"
	"testing"

	"github.com/shazib/mftracker/date"
	"github.com/shopspring/decimal"
)

const sampleFeed = `Scheme Code;ISIN Div Payout/ ISIN Growth;ISIN Div Reinvestment;Scheme Name;Net Asset Value;Date

Open Ended Schemes(Debt Scheme - Banking and PSU Fund)

Aditya Birla Sun Life Mutual Fund

119551;INF209KA12Z1;INF209KA13Z9;Aditya Birla Sun Life Banking & PSU Debt Fund-Growth;305.4747;13-May-2024
120754;INF109K01VQ1;INF109K01VR9;ICICI Prudential Short Term-Growth;45.6789;13-May-2024
1207;INF999999999;-;Short Code Fund-Growth;10.5000;13-May-2024
`

func TestParseLine(t *testing.T) {
	q, err := ParseLine("120754;INF109K01VQ1;INF109K01VR9;ICICI Prudential Short Term-Growth;45.6789;13-May-2024")
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if q.SchemeCode != "120754" {
		t.Errorf("scheme code = %q", q.SchemeCode)
	}
	if q.Name != "ICICI Prudential Short Term" {
		t.Errorf("name = %q, want the part before the first '-', trimmed", q.Name)
	}
	if !q.NAV.Equal(decimal.RequireFromString("45.6789")) {
		t.Errorf("nav = %s", q.NAV)
	}
	if q.Date != date.MustParse("13-May-2024") {
		t.Errorf("date = %s", q.Date)
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, line := range []string{
		"",
		"Open Ended Schemes(Debt Scheme)",
		"120754;a;b;Name-Growth;not-a-number;13-May-2024",
		"120754;a;b;Name-Growth;45.6789;2024-05-13",
	} {
		if _, err := ParseLine(line); err == nil {
			t.Errorf("ParseLine(%q): expected an error", line)
		}
	}
}

func TestFilter_ExactSchemeCodeMatch(t *testing.T) {
	// "1207" must not match "120754" even though it is a prefix of it;
	// the shell revisions' alternation grep could over-match here.
	lines := Filter(sampleFeed, []string{"1207"})
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1: %v", len(lines), lines)
	}
	if !strings.HasPrefix(lines[0], "1207;") {
		t.Errorf("matched the wrong record: %q", lines[0])
	}
}

func TestFilter_SkipsHeadings(t *testing.T) {
	lines := Filter(sampleFeed, []string{"119551", "120754"})
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2: %v", len(lines), lines)
	}
	quotes, err := Parse(lines)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if quotes[0].SchemeCode != "119551" || quotes[1].SchemeCode != "120754" {
		t.Errorf("quotes = %+v", quotes)
	}
}

func TestDigest(t *testing.T) {
	a, b := Digest("one"), Digest("two")
	if a == b {
		t.Error("different content must hash differently")
	}
	if Digest("one") != a {
		t.Error("digest must be stable")
	}
}
